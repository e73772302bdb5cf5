package domain

// FetchOutcome описывает результат обращения к провайдеру парковочных данных.
// Агрегатор использует только список записей; outcome нужен для логирования
// и тестов - ошибки провайдеров никогда не покидают ядро как error.
type FetchOutcome int

const (
	// OutcomeSuccess - провайдер вернул непустой список записей
	OutcomeSuccess FetchOutcome = iota

	// OutcomeEmpty - валидный пустой результат (кешируется)
	OutcomeEmpty

	// OutcomeTimeout - все попытки завершились таймаутом или сетевой ошибкой
	OutcomeTimeout

	// OutcomeUpstreamError - провайдер вернул ошибочный статус
	OutcomeUpstreamError

	// OutcomeDisabled - провайдер отключен (нет API-ключа)
	OutcomeDisabled
)

func (o FetchOutcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeEmpty:
		return "empty"
	case OutcomeTimeout:
		return "timeout"
	case OutcomeUpstreamError:
		return "upstream_error"
	case OutcomeDisabled:
		return "disabled"
	default:
		return "unknown"
	}
}

// OSMParkingSpot - сырая запись парковки из Overpass API.
// ID уже содержит префикс источника (osm_<native id>).
type OSMParkingSpot struct {
	ID   string            `json:"id"`
	Lat  float64           `json:"lat"`
	Lon  float64           `json:"lon"`
	Tags map[string]string `json:"tags"`
}

// GooglePlace - сырая запись из Google Places Text Search.
type GooglePlace struct {
	PlaceID          string   `json:"place_id"`
	Name             string   `json:"name"`
	Geometry         Geometry `json:"geometry"`
	FormattedAddress string   `json:"formatted_address,omitempty"`
	Rating           float64  `json:"rating,omitempty"`
	Types            []string `json:"types,omitempty"`
}

// Geometry - геометрия места из Google Places
type Geometry struct {
	Location LatLng `json:"location"`
}

// LatLng - координаты в формате Google Places
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
