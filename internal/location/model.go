package location

// District as served to clients.
type District struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	DistrictID int64  `json:"districtId"`
}

// Ward as served to clients.
type Ward struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

const (
	DistrictUrban   = "urban district"
	DistrictRural   = "rural district"
	DistrictCity    = "city"
	WardWard        = "ward"
	WardCommune     = "commune"
	WardTown        = "town"
	CategoryUnknown = "unknown"
)

// ---------------- provider wire format ----------------

type providerEnvelope[T any] struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    []T    `json:"data"`
}

type providerDistrict struct {
	DistrictID   int64  `json:"DistrictID"`
	ProvinceID   int64  `json:"ProvinceID"`
	DistrictName string `json:"DistrictName"`
	Type         int    `json:"Type"`
}

type providerWard struct {
	WardCode   string `json:"WardCode"`
	DistrictID int64  `json:"DistrictID"`
	WardName   string `json:"WardName"`
	Type       int    `json:"Type"`
}
