package dto

// RefreshRequest - запрос на цикл агрегации вокруг координат пользователя
type RefreshRequest struct {
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
	Lng float64 `json:"lng" validate:"min=-180,max=180"`
}

// AddSpotRequest - запрос на добавление краудсорсингового места
type AddSpotRequest struct {
	Lat  float64 `json:"lat" validate:"min=-90,max=90"`
	Lng  float64 `json:"lng" validate:"min=-180,max=180"`
	Name *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
}

// ReportStatusRequest - отчёт пользователя о статусе места
type ReportStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=free occupied"`
}

// ListSpotsQuery - параметры выборки коллекции
type ListSpotsQuery struct {
	Lat    *float64 `query:"lat" validate:"omitempty,min=-90,max=90"`
	Lng    *float64 `query:"lng" validate:"omitempty,min=-180,max=180"`
	Status string   `query:"status" validate:"omitempty,oneof=free occupied"`
}
