package schedule

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTime  = errors.New("invalid time of day")
	ErrInvalidTimes = errors.New("invalid time set")
	ErrInvalidRange = errors.New("invalid date range")
)

// TimeOfDay es una hora del día (hora + minuto) de una medicina.
// Valor inmutable; dos TimeOfDay son iguales si coinciden hora y minuto.
type TimeOfDay struct {
	Hour   int
	Minute int
}

func (t TimeOfDay) Validate() error {
	if t.Hour < 0 || t.Hour > 23 {
		return ErrInvalidTime
	}
	if t.Minute < 0 || t.Minute > 59 {
		return ErrInvalidTime
	}
	return nil
}

// Format renderiza "HH:MM" con cero a la izquierda.
// La identidad de un slot se define sobre este string, no sobre el struct.
func (t TimeOfDay) Format() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}
