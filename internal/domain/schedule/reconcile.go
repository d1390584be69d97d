package schedule

import "sort"

// Diff es el resultado de reconciliar el set persistido contra el set
// objetivo de una definición. El que aplica el diff debe borrar ToDelete
// y crear ToCreate; ToKeep no se toca (conserva taken/takenAt).
type Diff struct {
	ToCreate []Slot
	ToDelete []Slot
	ToKeep   []Slot
}

func (d Diff) Empty() bool {
	return len(d.ToCreate) == 0 && len(d.ToDelete) == 0
}

// Reconcile calcula el diff por clave (date, time) entre los slots
// actuales y los que implica la definición nueva.
//
//   - ToCreate = target − current: slots nuevos, nacen con taken=false.
//   - ToDelete = current − target: días/horas que la definición ya no
//     implica; su estado taken se descarta junto con ellos.
//   - ToKeep = current ∩ target: quedan intactos. Esto es la política
//     key-preserving: editar una medicina no resetea el historial de
//     los slots que no cambiaron.
//
// Función pura, sin I/O. Cubre alta (current vacío), edición y baja
// (target vacío, el caso degenerado que borra todo).
func Reconcile(current, target []Slot) Diff {
	cur := make(map[Slot]bool, len(current))
	for _, s := range current {
		cur[s] = true
	}
	tgt := make(map[Slot]bool, len(target))
	for _, s := range target {
		tgt[s] = true
	}

	var d Diff
	for s := range tgt {
		if cur[s] {
			d.ToKeep = append(d.ToKeep, s)
		} else {
			d.ToCreate = append(d.ToCreate, s)
		}
	}
	for s := range cur {
		if !tgt[s] {
			d.ToDelete = append(d.ToDelete, s)
		}
	}

	sortSlots(d.ToCreate)
	sortSlots(d.ToDelete)
	sortSlots(d.ToKeep)
	return d
}

// Orden estable por fecha y hora (útil en logs y tests).
func sortSlots(ss []Slot) {
	sort.Slice(ss, func(i, j int) bool {
		if ss[i].Date != ss[j].Date {
			return ss[i].Date < ss[j].Date
		}
		return ss[i].Time < ss[j].Time
	})
}
