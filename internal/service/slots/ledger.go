package slots

import "github.com/m04kA/SMC-SlotService/internal/domain"

// Счетчики мест слота обновляются только через функции этого файла,
// чтобы все три счетчика менялись согласованно.
//
// NbPotentialRemainingPlaces зарезервирован под многоэтапное бронирование
// и до его появления движется синхронно с NbRemainingPlaces.

// ReconcileCapacityChange пересчитывает счетчики слота после изменения
// вместимости. Счетчики переносятся из прежнего состояния old и сдвигаются
// на дельту вместимости. При уменьшении свободные места не опускаются ниже
// нуля: существующие брони не трогаем, слот остается в перебронированном
// состоянии до решения оператора.
func ReconcileCapacityChange(slot *domain.Slot, old *domain.Slot) {
	slot.NbPlacesTaken = old.NbPlacesTaken

	delta := slot.MaxCapacity - old.MaxCapacity
	switch {
	case delta > 0:
		slot.NbRemainingPlaces = old.NbRemainingPlaces + delta
		slot.NbPotentialRemainingPlaces = old.NbPotentialRemainingPlaces + delta
	case delta < 0:
		slot.NbRemainingPlaces = floorZero(old.NbRemainingPlaces + delta)
		slot.NbPotentialRemainingPlaces = floorZero(old.NbPotentialRemainingPlaces + delta)
	default:
		slot.NbRemainingPlaces = old.NbRemainingPlaces
		slot.NbPotentialRemainingPlaces = old.NbPotentialRemainingPlaces
	}
}

// ApplyBooking списывает nbSeats мест под новую бронь.
// Вызывающий обязан заранее проверить, что мест достаточно.
func ApplyBooking(slot *domain.Slot, nbSeats int) {
	slot.NbPlacesTaken += nbSeats
	slot.NbRemainingPlaces -= nbSeats
	slot.NbPotentialRemainingPlaces -= nbSeats
}

// ReleaseBooking возвращает nbSeats мест после отмены брони,
// симметрично ApplyBooking
func ReleaseBooking(slot *domain.Slot, nbSeats int) {
	slot.NbPlacesTaken = floorZero(slot.NbPlacesTaken - nbSeats)
	slot.NbRemainingPlaces += nbSeats
	slot.NbPotentialRemainingPlaces += nbSeats
}

func floorZero(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
