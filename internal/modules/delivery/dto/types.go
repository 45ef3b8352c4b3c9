package dto

type DelivererInfo struct {
	Name         string
	Version      string
	Enabled      bool
	Binary       string
	Capabilities []string
}

type DoctorResult struct {
	Name            string
	ChecksumValid   bool
	BinaryReachable bool
	LifecycleOK     bool
	Error           string
}

type DeliverInput struct {
	Deliverer string
	Filename  string
	MIME      string
	Content   []byte
}

type DeliverOutput struct {
	Deliverer string
	Target    string
	Message   string
}
