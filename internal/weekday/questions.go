// Package weekday holds the daily reflection questionnaire and the
// recommendation rules derived from recent activity.
package weekday

import "fmt"

// Questions is the prompt set for one weekday.
type Questions struct {
	Weekday         int      `json:"weekday"`
	YesterdayPrompt string   `json:"yesterday_prompt"`
	TodayPrompts    []string `json:"today_prompts"`
	TraineePrompt   string   `json:"trainee_prompt,omitempty"`
	Fallback        bool     `json:"fallback"`
}

// Fallback is served when the stored questions cannot be read. It is a
// degraded-mode default and may drift from what admins configured.
var Fallback = map[int]Questions{
	1: {
		Weekday:         1,
		YesterdayPrompt: "Was hast du am Wochenende für deine Ziele getan?",
		TodayPrompts: []string{
			"Welche Termine willst du diese Woche neu vereinbaren?",
			"Wen rufst du heute für eine Finanzanalyse an?",
		},
		TraineePrompt: "Was hast du dir für deine erste Tageshälfte vorgenommen?",
	},
	2: {
		Weekday:         2,
		YesterdayPrompt: "Welche Termine aus gestern hast du abgeschlossen?",
		TodayPrompts: []string{
			"Wen fragst du heute nach einer Empfehlung?",
			"Welche Einheiten willst du heute schreiben?",
		},
		TraineePrompt: "Welche Frage nimmst du heute mit zu deinem Mentor?",
	},
	3: {
		Weekday:         3,
		YesterdayPrompt: "Welche Empfehlungen hast du gestern erhalten?",
		TodayPrompts: []string{
			"Wen meldest du für die TIV an?",
			"Welche bAV-Checks kannst du heute anstoßen?",
		},
		TraineePrompt: "Welches Gespräch möchtest du heute begleiten?",
	},
	4: {
		Weekday:         4,
		YesterdayPrompt: "Wie liefen deine Gespräche gestern?",
		TodayPrompts: []string{
			"Wen lädst du zur TAA ein?",
			"Wer könnte sich für die TGS anmelden?",
		},
		TraineePrompt: "Was hast du diese Woche Neues gelernt?",
	},
	5: {
		Weekday:         5,
		YesterdayPrompt: "Was war gestern dein größter Erfolg?",
		TodayPrompts: []string{
			"Welche Termine stehen für nächste Woche schon fest?",
			"Was nimmst du dir für die nächste Woche vor?",
		},
		TraineePrompt: "Was möchtest du nächste Woche besser machen?",
	},
}

// Valid reports whether weekday has a questionnaire (Monday to Friday).
func Valid(weekday int) bool {
	return weekday >= 1 && weekday <= 5
}

// Prompts shapes the questionnaire for a user. stored is the admin-edited
// row, nil when it is missing or could not be read. The trainee prompt is
// only returned to trainees.
func Prompts(weekday int, trainee bool, stored *Questions) (Questions, error) {
	if !Valid(weekday) {
		return Questions{}, fmt.Errorf("weekday %d out of range 1-5", weekday)
	}
	var q Questions
	if stored != nil {
		q = *stored
		q.Weekday = weekday
		q.Fallback = false
	} else {
		q = Fallback[weekday]
		q.Fallback = true
	}
	q.TodayPrompts = append([]string(nil), q.TodayPrompts...)
	if !trainee {
		q.TraineePrompt = ""
	}
	return q, nil
}
