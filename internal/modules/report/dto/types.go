package dto

type ShareOutput struct {
	Activity   string
	DurationMS int64
	Duration   string
	Percent    float64
}

type SharesOutput struct {
	Items   []ShareOutput
	TotalMS int64
	Total   string
}

type ClockOutput struct {
	Display  string
	Activity string
	Running  bool
}
