package dto

// BaseResponse one base reference row.
type BaseResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// EquipmentResponse one equipment catalog row.
type EquipmentResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}
