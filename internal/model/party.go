package model

import "time"

type Party struct {
	Title           string    `json:"title"`
	Date            string    `json:"date"`
	Time            string    `json:"time"`
	RedCarpet       string    `json:"red_carpet"`
	StartsAt        time.Time `json:"starts_at"`
	Location        string    `json:"location"`
	DressCode       string    `json:"dress_code"`
	DressCodeNote   string    `json:"dress_code_note"`
	WhatToBring     string    `json:"what_to_bring"`
	WhatToBringNote string    `json:"what_to_bring_note"`
}

var partyStart = time.Date(2026, time.March, 15, 18, 0, 0, 0, time.FixedZone("PST", -8*60*60))

func WatchParty() Party {
	return Party{
		Title:           "2026 Oscars Watch Party",
		Date:            "Sunday, March 15, 2026",
		Time:            "6:00 PM",
		RedCarpet:       "Red Carpet at 5:00 PM",
		StartsAt:        partyStart,
		Location:        "3506 Hart Cmn, Fremont, California 94538",
		DressCode:       "Smart Casual",
		DressCodeNote:   "Or inspired by the nominees!",
		WhatToBring:     "Yourself & Your Appetite",
		WhatToBringNote: "For Oscar-nominated films and great food",
	}
}

type Countdown struct {
	DaysLeft int  `json:"days_left"`
	Days     int  `json:"days"`
	Hours    int  `json:"hours"`
	Minutes  int  `json:"minutes"`
	Seconds  int  `json:"seconds"`
	Started  bool `json:"started"`
}

// CountdownTo splits the time left until start. DaysLeft rounds up, so the
// day of the party still reads 1 until it starts. Past events report zero.
func CountdownTo(start, now time.Time) Countdown {
	d := start.Sub(now)
	if d <= 0 {
		return Countdown{Started: true}
	}
	total := int(d / time.Second)
	return Countdown{
		DaysLeft: int((d + 24*time.Hour - 1) / (24 * time.Hour)),
		Days:     total / 86400,
		Hours:    total % 86400 / 3600,
		Minutes:  total % 3600 / 60,
		Seconds:  total % 60,
	}
}
