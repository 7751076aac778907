// CLAUDE:SUMMARY Header-field extraction — fixed regex key/value lookups over the first page's text.
package measure

import (
	"regexp"
	"strings"
)

// Header key patterns. Each matches one labelled line of the first page;
// absent labels leave the field null. Labels vary slightly across vendor
// templates, hence the alternatives.
var (
	reSupplierName = regexp.MustCompile(`(?im)^\s*Supplier\s*(?:Name)?\s*[:：]\s*(\S.*?)\s*$`)
	reSupplierCode = regexp.MustCompile(`(?im)^\s*Supplier\s*Code\s*[:：]\s*(\S.*?)\s*$`)
	rePartNumber   = regexp.MustCompile(`(?im)^\s*Part\s*(?:No\.?|Number)\s*[:：]\s*(\S.*?)\s*$`)
	rePartName     = regexp.MustCompile(`(?im)^\s*Part\s*Name\s*[:：]\s*(\S.*?)\s*$`)
	reToolingNo    = regexp.MustCompile(`(?im)^\s*Tooling\s*(?:No\.?|Number)?\s*[:：]\s*(\S.*?)\s*$`)
	reCavityNo     = regexp.MustCompile(`(?im)^\s*Cavity\s*(?:No\.?|Number)?\s*[:：]\s*(\S.*?)\s*$`)
	reAssemblyName = regexp.MustCompile(`(?im)^\s*Assembly\s*(?:Name)?\s*[:：]\s*(\S.*?)\s*$`)
	reMaterialMfr  = regexp.MustCompile(`(?im)^\s*Material\s*(?:Manufacturer|Maker)\s*[:：]\s*(\S.*?)\s*$`)
	reMaterial     = regexp.MustCompile(`(?im)^\s*Material\s*(?:Name)?\s*[:：]\s*(\S.*?)\s*$`)
	reGradeName    = regexp.MustCompile(`(?im)^\s*Grade\s*(?:Name)?\s*[:：]\s*(\S.*?)\s*$`)
	reCompliance   = regexp.MustCompile(`(?im)^\s*(?:Judge?ment|Compliance|Result)\s*[:：]?\s*(PASS|FAIL|OK|NG)\s*$`)

	// RoHS substance rows: "Cd : Not Detected", "Pb: ND", "Cr6+ : 0.02".
	reRoHSCd  = regexp.MustCompile(`(?im)^\s*Cd(?:\s*\(.*?\))?\s*[:：]\s*(\S.*?)\s*$`)
	reRoHSHg  = regexp.MustCompile(`(?im)^\s*Hg(?:\s*\(.*?\))?\s*[:：]\s*(\S.*?)\s*$`)
	reRoHSPb  = regexp.MustCompile(`(?im)^\s*Pb(?:\s*\(.*?\))?\s*[:：]\s*(\S.*?)\s*$`)
	reRoHSCr6 = regexp.MustCompile(`(?im)^\s*Cr\s*(?:6\+?|\(?VI\)?)\s*[:：]\s*(\S.*?)\s*$`)
)

// ExtractHeader pulls the per-document metadata block out of the first
// page's linearized text. Every field is optional; template variants omit
// whole sections.
func ExtractHeader(firstPageText string) HeaderInfo {
	h := HeaderInfo{
		SupplierName:         firstMatch(reSupplierName, firstPageText),
		SupplierCode:         firstMatch(reSupplierCode, firstPageText),
		PartNumber:           firstMatch(rePartNumber, firstPageText),
		PartName:             firstMatch(rePartName, firstPageText),
		ToolingNumber:        firstMatch(reToolingNo, firstPageText),
		CavityNumber:         firstMatch(reCavityNo, firstPageText),
		AssemblyName:         firstMatch(reAssemblyName, firstPageText),
		Material:             firstMatch(reMaterial, firstPageText),
		MaterialManufacturer: firstMatch(reMaterialMfr, firstPageText),
		GradeName:            firstMatch(reGradeName, firstPageText),
		ComplianceResult:     firstMatch(reCompliance, firstPageText),
	}

	rohs := RoHSData{
		Cd:  firstMatch(reRoHSCd, firstPageText),
		Hg:  firstMatch(reRoHSHg, firstPageText),
		Pb:  firstMatch(reRoHSPb, firstPageText),
		Cr6: firstMatch(reRoHSCr6, firstPageText),
	}
	if rohs.Cd != nil || rohs.Hg != nil || rohs.Pb != nil || rohs.Cr6 != nil {
		h.RoHS = &rohs
	}
	return h
}

func firstMatch(re *regexp.Regexp, text string) *string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	v := strings.TrimSpace(m[1])
	if v == "" {
		return nil
	}
	return &v
}
