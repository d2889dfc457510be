package constants

// Enum domain les musik. Nilai string mengikuti data produksi lama,
// jadi jangan diterjemahkan.

var Instruments = []string{"Piano", "Vokal", "Drum", "Gitar", "Biola", "Bass"}

var Rooms = []string{"Ruang 1", "Ruang 2", "Ruang 3", "Home Visit"}

const (
	AttendanceNotYet       = "Belum Berlangsung"
	AttendanceSuccess      = "Success"
	AttendanceStudentLeave = "Murid Izin"
	AttendanceTeacherLeave = "Guru Izin"
	AttendanceReschedule   = "Reschedule"
)

var AttendanceStatuses = []string{
	AttendanceNotYet,
	AttendanceSuccess,
	AttendanceStudentLeave,
	AttendanceTeacherLeave,
	AttendanceReschedule,
}

const (
	PaymentUnpaid    = "Belum Lunas"
	PaymentPaid      = "Lunas"
	PaymentCancelled = "Dibatalkan"
)

var PaymentStatuses = []string{PaymentUnpaid, PaymentPaid, PaymentCancelled}

// Durasi sesi dalam menit.
var Durations = []int{30, 45, 60}

func contains(list []string, v string) bool {
	for _, it := range list {
		if it == v {
			return true
		}
	}
	return false
}

func IsValidInstrument(v string) bool { return contains(Instruments, v) }

func IsValidRoom(v string) bool { return contains(Rooms, v) }

func IsValidAttendanceStatus(v string) bool { return contains(AttendanceStatuses, v) }

func IsValidPaymentStatus(v string) bool { return contains(PaymentStatuses, v) }

func IsValidDuration(v int) bool {
	for _, d := range Durations {
		if d == v {
			return true
		}
	}
	return false
}
