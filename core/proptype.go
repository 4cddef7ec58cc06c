package core

import (
	"strings"

	"github.com/taxdeedflow/deedscore/schema"
)

// typeKeywords maps classification vocabulary seen in county exports to a
// property type. Checked in order against the combined zoning, land-use and
// stated-type text; first hit wins.
var typeKeywords = []struct {
	ptype    schema.PropertyType
	keywords []string
}{
	{schema.MobileHome, []string{"mobile home", "mobile", "manufactured", "trailer"}},
	{schema.MultiFamily, []string{"multi-family", "multifamily", "multi family", "duplex", "triplex", "fourplex", "apartment", "condo"}},
	{schema.MixedUse, []string{"mixed use", "mixed-use"}},
	{schema.Industrial, []string{"industrial", "warehouse", "manufacturing"}},
	{schema.Commercial, []string{"commercial", "retail", "office", "store"}},
	{schema.Agricultural, []string{"agricultural", "agriculture", "farm", "ranch", "orchard", "timber"}},
	{schema.VacantLand, []string{"vacant", "unimproved", "raw land"}},
	{schema.SingleFamily, []string{"single family", "single-family", "sfr", "residential", "dwelling"}},
}

// DetectPropertyType classifies a property from its county record. An
// explicitly stated type that matches the known set is trusted outright;
// otherwise classification falls back to zoning and land-use keywords, then
// to a building-footprint heuristic.
func DetectPropertyType(p *schema.PropertyData) schema.PropertyType {
	if p == nil {
		return schema.UnknownType
	}

	if stated := schema.PropertyType(strings.ToLower(strings.TrimSpace(p.PropertyType))); stated != "" {
		if _, ok := schema.ValidPropertyTypes[stated]; ok {
			return stated
		}
	}

	text := strings.ToLower(strings.Join([]string{p.PropertyType, p.LandUse, p.Zoning}, " "))
	for _, tk := range typeKeywords {
		for _, kw := range tk.keywords {
			if strings.Contains(text, kw) {
				return tk.ptype
			}
		}
	}

	// Zoning codes: R* residential, C* commercial, M*/I* industrial, A* ag.
	if z := strings.ToUpper(strings.TrimSpace(p.Zoning)); z != "" {
		switch z[0] {
		case 'R':
			return schema.SingleFamily
		case 'C':
			return schema.Commercial
		case 'M', 'I':
			return schema.Industrial
		case 'A':
			return schema.Agricultural
		}
	}

	if p.BuildingSqft != nil {
		if *p.BuildingSqft <= 0 {
			return schema.VacantLand
		}
		return schema.SingleFamily
	}
	return schema.UnknownType
}
