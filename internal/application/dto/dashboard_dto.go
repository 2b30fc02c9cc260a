package dto

// DashboardResponse is the body of GET /api/dashboard: the balance cards the
// frontend renders for one base and date window.
type DashboardResponse struct {
	BaseID         int64 `json:"base_id"`
	OpeningBalance int64 `json:"opening_balance"`
	Purchases      int64 `json:"purchases"`
	TransferIn     int64 `json:"transfer_in"`
	TransferOut    int64 `json:"transfer_out"`
	Assigned       int64 `json:"assigned"`
	Expended       int64 `json:"expended"`
	NetMovement    int64 `json:"net_movement"`
	ClosingBalance int64 `json:"closing_balance"`
}

// StockItemResponse is one row of GET /api/stock.
type StockItemResponse struct {
	EquipmentID   int64  `json:"equipment_id"`
	EquipmentName string `json:"equipment_name"`
	Category      string `json:"category"`
	OnHand        int64  `json:"on_hand"`
	Assigned      int64  `json:"assigned"`
}
