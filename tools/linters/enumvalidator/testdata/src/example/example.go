package example

type DealStage string

const (
	DealStageLead      DealStage = "lead"
	DealStageQualified DealStage = "qualified"
)

type CallStatus string

const (
	CallStatusQueued CallStatus = "queued"
)

type Deal struct {
	Stage DealStage
}

type CallRecord struct {
	Status CallStatus
}

func bad() {
	d := &Deal{}
	d.Stage = "won" // want "enum field Stage assigned string literal"

	c := &CallRecord{}
	c.Status = "ringing" // want "enum field Status assigned string literal"

	_ = Deal{Stage: "lost"} // want "enum field Stage assigned string literal"
}

func good() {
	d := &Deal{}
	d.Stage = DealStageLead // OK: using constant

	c := &CallRecord{Status: CallStatusQueued}
	_ = c
}

func alsoGood() {
	// OK: Variable, not literal
	stage := DealStageQualified
	d := &Deal{Stage: stage}
	_ = d
}
