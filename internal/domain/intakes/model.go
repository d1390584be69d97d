package intakes

import "time"

// Intake es una toma concreta: una medicina, en una fecha, a una hora,
// con su estado taken. Su identidad lógica es (medicineID, date, time);
// el ID es la clave técnica del registro.
type Intake struct {
	ID          string
	MedicineID  string
	OwnerUserID string

	Date time.Time // fecha calendario, medianoche UTC
	Time string    // "HH:MM"

	Taken   bool
	TakenAt *time.Time // presente solo cuando Taken

	// Nombre de la medicina, join de lectura para el calendario.
	MedicineName string
}
