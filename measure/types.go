// CLAUDE:SUMMARY Record, header, and document result types for the measurement extraction pipeline.
package measure

// Record is one inspected dimension on one cavity, reconstructed from a
// table row. Optional fields are empty strings; Page is diagnostic only.
// A Record is never mutated after it enters a document's final table.
type Record struct {
	No               string `json:"no"`
	Sym              string `json:"sym"`
	Dimension        string `json:"dimension"`
	Upper            string `json:"upper"`
	Lower            string `json:"lower"`
	Pos              string `json:"pos"`
	MeasuredByVendor string `json:"measured_by_vendor"`
	Page             int    `json:"page"`
}

// Valid reports whether the record satisfies the minimal invariants:
// a digit-only ordinal and at least one of dimension / vendor value.
func (r Record) Valid() bool {
	if !isDigits(r.No) {
		return false
	}
	return r.Dimension != "" || r.MeasuredByVendor != ""
}

// identity is the deduplication key. Sym participates so that legend rows
// repeating (no, dimension) across pages are not collapsed; an empty Sym
// degrades to the plain (no, dimension) key.
type identity struct {
	no        string
	sym       string
	dimension string
}

func (r Record) identity() identity {
	return identity{no: r.No, sym: r.Sym, dimension: r.Dimension}
}

// RoHSData holds per-substance detection results from the report's
// compliance section. Absent substances are null.
type RoHSData struct {
	Cd  *string `json:"cd"`
	Hg  *string `json:"hg"`
	Pb  *string `json:"pb"`
	Cr6 *string `json:"cr6"`
}

// HeaderInfo is the per-document metadata block extracted from the first
// page. Every field is optional: template variants omit whole sections.
type HeaderInfo struct {
	SupplierName         *string   `json:"supplier_name"`
	SupplierCode         *string   `json:"supplier_code"`
	PartNumber           *string   `json:"part_number"`
	PartName             *string   `json:"part_name"`
	ToolingNumber        *string   `json:"tooling_number"`
	CavityNumber         *string   `json:"cavity_number"`
	AssemblyName         *string   `json:"assembly_name"`
	Material             *string   `json:"material"`
	MaterialManufacturer *string   `json:"material_manufacturer"`
	GradeName            *string   `json:"grade_name"`
	ComplianceResult     *string   `json:"compliance_result"`
	RoHS                 *RoHSData `json:"rohs_data"`
}

// DocumentResult aggregates one uploaded file's extraction output. Pages is
// processing metadata for event logs, not part of the JSON envelope.
type DocumentResult struct {
	CavityID     string     `json:"cavity_id"`
	HeaderInfo   HeaderInfo `json:"header_info"`
	Measurements []Record   `json:"measurements"`
	Pages        int        `json:"-"`
}
