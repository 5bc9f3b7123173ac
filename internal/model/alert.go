package model

// Alert represents one positive leak detection event: the raw sensor
// inputs as entered by the operator plus the predicted leak rate.
type Alert struct {
	ID        int64   `json:"id"`
	Timestamp int64   `json:"timestamp"`
	CH4L      float64 `json:"ch4l"`
	CH4R      float64 `json:"ch4r"`
	P         float64 `json:"p"`
	RsL       float64 `json:"rsl"`
	RsR       float64 `json:"rsr"`
	LeakRate  float64 `json:"leak_rate"`
}
