package handler

type recordConversionRequest struct {
	LinkCode    string  `json:"linkCode"    validate:"required"`
	Amount      float64 `json:"amount"      validate:"required,gt=0"`
	Description string  `json:"description"`
}

type updateCommissionRequest struct {
	Status string `json:"status" validate:"required,oneof=approved paid cancelled"`
}
