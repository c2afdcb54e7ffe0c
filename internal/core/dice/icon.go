package dice

import "github.com/louisbranch/fightfantasy/internal/platform/icons"

var faceIcons = [Faces]icons.ID{
	icons.DieOne,
	icons.DieTwo,
	icons.DieThree,
	icons.DieFour,
	icons.DieFive,
	icons.DieSix,
}

// IconFor maps a face value to its icon. Values outside [1, 6], including the
// zero value used for "not rolled yet", map to the one-pip icon.
func IconFor(value int) icons.ID {
	if value < 1 || value > Faces {
		return faceIcons[0]
	}
	return faceIcons[value-1]
}

// IconForOptional is IconFor for values that may be absent.
func IconForOptional(value *int) icons.ID {
	if value == nil {
		return faceIcons[0]
	}
	return IconFor(*value)
}
