package location

func districtCategory(code int) string {
	switch code {
	case 1:
		return DistrictUrban
	case 2:
		return DistrictRural
	case 3:
		return DistrictCity
	default:
		return CategoryUnknown
	}
}

func wardCategory(code int) string {
	switch code {
	case 1:
		return WardWard
	case 2:
		return WardCommune
	case 3:
		return WardTown
	default:
		return CategoryUnknown
	}
}

func mapDistricts(in []providerDistrict) []District {
	out := make([]District, 0, len(in))
	for _, d := range in {
		out = append(out, District{
			Name:       d.DistrictName,
			Type:       districtCategory(d.Type),
			DistrictID: d.DistrictID,
		})
	}
	return out
}

func mapWards(in []providerWard) []Ward {
	out := make([]Ward, 0, len(in))
	for _, w := range in {
		out = append(out, Ward{
			Name: w.WardName,
			Type: wardCategory(w.Type),
		})
	}
	return out
}
