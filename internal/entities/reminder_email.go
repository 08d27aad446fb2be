package entities

type ReminderEmailData struct {
	DriverName       string
	SlotName         string
	EndTimeFormatted string
	CurrentYear      int
}
