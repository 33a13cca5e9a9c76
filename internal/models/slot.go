package models

// PassSlot describes one of the ten fixed seats. The seat descriptor and the
// background image never change; only the occupant member does.
type PassSlot struct {
	SlotID   int    `json:"slotId"`
	SeatInfo string `json:"seatInfo"`
	ImageURL string `json:"imageUrl"`
}

// PassSlots is the fixed configuration of the club's ten season passes,
// matching the physical seats at Riazor.
var PassSlots = []PassSlot{
	{SlotID: 1, SeatInfo: "F:10 A:89", ImageURL: slotImages[0]},
	{SlotID: 2, SeatInfo: "F:9 A:79", ImageURL: slotImages[1]},
	{SlotID: 3, SeatInfo: "F:9 A:91", ImageURL: slotImages[2]},
	{SlotID: 4, SeatInfo: "F:9 A:93", ImageURL: slotImages[3]},
	{SlotID: 5, SeatInfo: "F:8 A:79", ImageURL: slotImages[4]},
	{SlotID: 6, SeatInfo: "F:8 A:81", ImageURL: slotImages[5]},
	{SlotID: 7, SeatInfo: "F:8 A:83", ImageURL: slotImages[6]},
	{SlotID: 8, SeatInfo: "F:8 A:89", ImageURL: slotImages[7]},
	{SlotID: 9, SeatInfo: "F:6 A:123", ImageURL: slotImages[8]},
	{SlotID: 10, SeatInfo: "F:6 A:125", ImageURL: slotImages[9]},
}

// Fixed card backgrounds, one per slot.
var slotImages = []string{
	"https://drive.google.com/file/d/19GnkjVFkIVumPCP82vNLtw3KSlUlmmQp/view?usp=drivesdk",
	"https://drive.google.com/file/d/1w-xb5fbA1VFx2cL6h71qYTg6SHhMVyFv/view?usp=drivesdk",
	"https://drive.google.com/file/d/1WwInvzBVjlN0lKn1Qj_0EN5nCn3AFKzS/view?usp=drivesdk",
	"https://drive.google.com/file/d/1ya69kWqk5I51rZi3b3segCSlguJvROqS/view?usp=drivesdk",
	"https://drive.google.com/file/d/1OKgnXQiRIHdOYhzHkN2xHekhJhZJ2UI2/view?usp=drivesdk",
	"https://drive.google.com/file/d/1o8O3jrNVUh1WqvJCFslzorKJssnDQlI2/view?usp=drivesdk",
	"https://drive.google.com/file/d/1Xk0XDbU9YrScl5KE4NudYyddRA0mvO_O/view?usp=drivesdk",
	"https://drive.google.com/file/d/11hWN3SIEc-i2BoaM5gv0vxxjWBevY9WE/view?usp=drivesdk",
	"https://drive.google.com/file/d/14cT5cd4vz81cSb4aeB0upPsctTOFKEOq/view?usp=drivesdk",
	"https://drive.google.com/file/d/1bvol3kzgyV601iwDNJUceokAgK-i6Ekw/view?usp=drivesdk",
}

// SlotByID returns the fixed slot descriptor, or false for an unknown id.
func SlotByID(slotID int) (PassSlot, bool) {
	for _, s := range PassSlots {
		if s.SlotID == slotID {
			return s, true
		}
	}
	return PassSlot{}, false
}
