package domain

import (
	"slices"
	"time"
)

// Phase is the top-level screen of the game.
type Phase string

const (
	PhaseMenu     Phase = "menu"
	PhasePlaying  Phase = "playing"
	PhaseFeedback Phase = "feedback"
	PhaseLesson   Phase = "lesson"
	PhaseGameOver Phase = "gameOver"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

var difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// Difficulties returns the difficulties from easiest to hardest.
func Difficulties() []Difficulty {
	return slices.Clone(difficulties)
}

func (d Difficulty) Valid() bool {
	return slices.Contains(difficulties, d)
}

// Overlay is a modal view layered on top of the phase.
type Overlay string

const (
	OverlayAchievements   Overlay = "achievements"
	OverlayShop           Overlay = "shop"
	OverlayLeaderboard    Overlay = "leaderboard"
	OverlayProfile        Overlay = "profile"
	OverlaySettings       Overlay = "settings"
	OverlayMiniGame       Overlay = "miniGame"
	OverlayTutorial       Overlay = "tutorial"
	OverlayProgressChart  Overlay = "progressChart"
	OverlayHint           Overlay = "hint"
	OverlayDailyChallenge Overlay = "dailyChallenge"
)

var overlays = []Overlay{
	OverlayAchievements, OverlayShop, OverlayLeaderboard, OverlayProfile, OverlaySettings,
	OverlayMiniGame, OverlayTutorial, OverlayProgressChart, OverlayHint, OverlayDailyChallenge,
}

func (o Overlay) Valid() bool {
	return slices.Contains(overlays, o)
}

// Question is a scenario of the question bank.
type Question struct {
	Text    string   `json:"question"`
	Emotion string   `json:"emotion"`
	Options []Option `json:"options"`
	Lesson  string   `json:"lesson"`
	Insight string   `json:"insight"`
	Hint    string   `json:"hint"`
}

type Option struct {
	Text     string `json:"text"`
	Correct  bool   `json:"correct"`
	Category string `json:"category"`
}

type AchievementID string

const (
	AchievementQuickThinker        AchievementID = "quickThinker"
	AchievementEmpathyMaster       AchievementID = "empathyMaster"
	AchievementConsistentPerformer AchievementID = "consistentPerformer"
	AchievementCoinCollector       AchievementID = "coinCollector"
	AchievementMiniGameChampion    AchievementID = "miniGameChampion"
	AchievementDailyChallenger     AchievementID = "dailyChallenger"
	AchievementEQExpert            AchievementID = "eqExpert"
	AchievementSocialButterfly     AchievementID = "socialButterfly"
)

var achievementIDs = []AchievementID{
	AchievementQuickThinker, AchievementEmpathyMaster, AchievementConsistentPerformer, AchievementCoinCollector,
	AchievementMiniGameChampion, AchievementDailyChallenger, AchievementEQExpert, AchievementSocialButterfly,
}

// AchievementIDs returns the fixed set of achievements in display order.
func AchievementIDs() []AchievementID {
	return slices.Clone(achievementIDs)
}

// Ledger maps every achievement to the tier reached, 0 to 3.
type Ledger map[AchievementID]int

// NewLedger returns a ledger with every achievement at tier 0.
func NewLedger() Ledger {
	l := make(Ledger, len(achievementIDs))
	for _, id := range achievementIDs {
		l[id] = 0
	}
	return l
}

func (l Ledger) Clone() Ledger {
	c := NewLedger()
	for id, tier := range l {
		c[id] = tier
	}
	return c
}

type PowerUpID int

// ProgressRecord is a finished game in the player's history.
type ProgressRecord struct {
	Date  time.Time `json:"date"`
	Score int       `json:"score"`
}

type LeaderboardEntry struct {
	Name       string     `json:"name"`
	Score      int        `json:"score"`
	Difficulty Difficulty `json:"difficulty"`
}

// Session is the live record of one play-through. Its JSON form is the persisted session snapshot.
type Session struct {
	CurrentQuestion         int              `json:"currentQuestionIndex"`
	Score                   int              `json:"score"`
	Level                   int              `json:"level"`
	XP                      int              `json:"xp"`
	Streak                  int              `json:"streak"`
	Coins                   int              `json:"coins"`
	Hearts                  int              `json:"hearts"`
	Difficulty              Difficulty       `json:"difficulty"`
	UnlockedAchievements    Ledger           `json:"unlockedAchievements"`
	UserName                string           `json:"userName"`
	DailyChallengeCompleted bool             `json:"dailyChallengeCompleted"`
	PersonalBest            int              `json:"personalBest"`
	ProgressHistory         []ProgressRecord `json:"progressHistory"`
	ActivePowerUps          []PowerUpID      `json:"activePowerUps"`
	BackgroundColor         string           `json:"backgroundColor"`
	FontColor               string           `json:"fontColor"`

	// Runtime only.
	Timer        int  `json:"-"`
	TimerRunning bool `json:"-"`
}

// Challenge is the daily challenge of a calendar day.
type Challenge struct {
	Date            string `json:"date"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	RewardCoins     int    `json:"reward"`
	ProgressPercent int    `json:"progress"`
	Completed       bool   `json:"completed"`
	Claimed         bool   `json:"claimed"`
	SecondsLeft     int    `json:"timeLeft"`
}

type Sound struct {
	Volume  float64 `json:"volume"`
	Enabled bool    `json:"enabled"`
}

type AudioSettings struct {
	BackgroundMusic Sound `json:"backgroundMusic"`
	ClickSound      Sound `json:"clickSound"`
	SuccessSound    Sound `json:"successSound"`
	FailureSound    Sound `json:"failureSound"`
}

type AppSettings struct {
	Theme           string `json:"theme"`
	TextSize        int    `json:"textSize"`
	Font            string `json:"font"`
	Notifications   bool   `json:"notifications"`
	BackgroundColor string `json:"backgroundColor"`
	FontColor       string `json:"fontColor"`
}

// Settings is the player's configuration, persisted apart from the session.
type Settings struct {
	AudioSettings
	AppSettings
}
