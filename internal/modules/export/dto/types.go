package dto

type ExportInput struct {
	Via []string
}

type AttemptOutput struct {
	Deliverer string
	Error     string
}

type ExportOutput struct {
	Filename  string
	MIME      string
	Size      int
	Deliverer string
	Target    string
	Message   string
	Attempts  []AttemptOutput
}
