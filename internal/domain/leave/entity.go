package leave

// Leave kinds as stored by the (out of scope) request/approval workflow.
// Only the guard query reads them here.
const (
	KindVacation = "VACACIONES"
	KindSickness = "ENFERMEDAD"
	KindAbsence  = "AUSENCIA"
)
