package mode

import "sort"

// builtin holds the timings edidctl can generate without a config file.
// Values are the usual DMT/CEA timings for each resolution at 60 Hz.
var builtin = []Mode{
	{
		Name: "640x480", Clock: 25175,
		HDisplay: 640, HSyncStart: 656, HSyncEnd: 752, HTotal: 800,
		VDisplay: 480, VSyncStart: 490, VSyncEnd: 492, VTotal: 525,
		VRefresh: 60, Flags: FlagNHSync | FlagNVSync,
	},
	{
		Name: "800x600", Clock: 40000,
		HDisplay: 800, HSyncStart: 840, HSyncEnd: 968, HTotal: 1056,
		VDisplay: 600, VSyncStart: 601, VSyncEnd: 605, VTotal: 628,
		VRefresh: 60, Flags: FlagPHSync | FlagPVSync,
	},
	{
		Name: "1024x768", Clock: 65000,
		HDisplay: 1024, HSyncStart: 1048, HSyncEnd: 1184, HTotal: 1344,
		VDisplay: 768, VSyncStart: 771, VSyncEnd: 777, VTotal: 806,
		VRefresh: 60, Flags: FlagNHSync | FlagNVSync,
	},
	{
		Name: "1280x720", Clock: 74250,
		HDisplay: 1280, HSyncStart: 1390, HSyncEnd: 1430, HTotal: 1650,
		VDisplay: 720, VSyncStart: 725, VSyncEnd: 730, VTotal: 750,
		VRefresh: 60, Flags: FlagPHSync | FlagPVSync,
	},
	{
		Name: "1920x1080", Clock: 148500,
		HDisplay: 1920, HSyncStart: 2008, HSyncEnd: 2052, HTotal: 2200,
		VDisplay: 1080, VSyncStart: 1084, VSyncEnd: 1089, VTotal: 1125,
		VRefresh: 60, Flags: FlagPHSync | FlagPVSync,
	},
}

// Lookup returns the builtin mode with the given name.
func Lookup(name string) (Mode, bool) {
	for _, m := range builtin {
		if m.Name == name {
			return m, true
		}
	}
	return Mode{}, false
}

// Names lists the builtin mode names, sorted.
func Names() []string {
	names := make([]string, len(builtin))
	for i, m := range builtin {
		names[i] = m.Name
	}
	sort.Strings(names)
	return names
}
