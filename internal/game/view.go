package game

import (
	"slices"

	"github.com/victornm/eqgame/internal/domain"
)

// View is a read-only snapshot of the game for rendering.
type View struct {
	ID             string           `json:"id"`
	Phase          domain.Phase     `json:"phase"`
	Overlays       []domain.Overlay `json:"overlays"`
	Session        domain.Session   `json:"session"`
	Timer          int              `json:"timer"`
	TimerRunning   bool             `json:"timerRunning"`
	TotalQuestions int              `json:"totalQuestions"`
	Question       *QuestionView    `json:"question,omitempty"`
	Feedback       *Feedback        `json:"feedback,omitempty"`
	Lesson         string           `json:"lesson,omitempty"`
	Hint           string           `json:"hint,omitempty"`
	Result         *Result          `json:"result,omitempty"`
}

// QuestionView is a question without its answers.
type QuestionView struct {
	Index   int      `json:"index"`
	Text    string   `json:"text"`
	Emotion string   `json:"emotion"`
	Options []string `json:"options"`
}

func (g *Game) View() View {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.view()
}

func (g *Game) Phase() domain.Phase {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.phase
}

func (g *Game) view() View {
	s := g.session
	s.UnlockedAchievements = s.UnlockedAchievements.Clone()
	s.ProgressHistory = slices.Clone(s.ProgressHistory)
	s.ActivePowerUps = slices.Clone(s.ActivePowerUps)

	v := View{
		ID:             g.id,
		Phase:          g.phase,
		Overlays:       slices.Clone(g.overlays),
		Session:        s,
		Timer:          s.Timer,
		TimerRunning:   s.TimerRunning,
		TotalQuestions: g.bank.Len(),
		Hint:           g.hint,
	}
	if v.Overlays == nil {
		v.Overlays = []domain.Overlay{}
	}

	q, ok := g.bank.At(s.CurrentQuestion)
	if ok && g.phase != domain.PhaseMenu && g.phase != domain.PhaseGameOver {
		qv := &QuestionView{Index: s.CurrentQuestion, Text: q.Text, Emotion: q.Emotion}
		for _, o := range q.Options {
			qv.Options = append(qv.Options, o.Text)
		}
		v.Question = qv
	}

	switch g.phase {
	case domain.PhaseFeedback:
		v.Feedback = cloneFeedback(g.answer)
	case domain.PhaseLesson:
		v.Feedback = cloneFeedback(g.answer)
		v.Lesson = q.Lesson
	case domain.PhaseGameOver:
		v.Feedback = cloneFeedback(g.answer)
		if g.final != nil {
			r := *g.final
			v.Result = &r
		}
	}

	return v
}

func cloneFeedback(f *Feedback) *Feedback {
	if f == nil {
		return nil
	}
	c := *f
	return &c
}
