package settings

type UpdateSettingsRequest struct {
	Document Document `json:"document" binding:"required"`
}

type SettingsResponse struct {
	Version  int      `json:"version"`
	Document Document `json:"document"`
}
