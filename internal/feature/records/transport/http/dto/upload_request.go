package dto

import "encoding/json"

// UploadReq is the body of POST /api/records/upload.
// Cost stays raw so a JSON number or a numeric string can be read as an exact decimal.
type UploadReq struct {
	StudentID  uint            `json:"studentId"`
	MealType   string          `json:"mealType"`
	Items      string          `json:"items"`
	Cost       json.RawMessage `json:"cost"`
	RecordDate string          `json:"recordDate"`
}
