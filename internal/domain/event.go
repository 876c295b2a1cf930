package domain

const (
	EventNameAnswerResolved          = "answer.resolved"
	EventNameLevelUp                 = "level.up"
	EventNameAchievementUnlocked     = "achievement.unlocked"
	EventNamePersonalBest            = "game.personal_best"
	EventNameGameFinished            = "game.finished"
	EventNamePowerUpActivated        = "powerup.activated"
	EventNameDailyChallengeCompleted = "daily_challenge.completed"
	EventNameDailyChallengeClaimed   = "daily_challenge.claimed"
	EventNameSettingsSaved           = "settings.saved"
)

type AnswerResult string

const (
	AnswerCorrect   AnswerResult = "correct"
	AnswerIncorrect AnswerResult = "incorrect"
	AnswerTimeout   AnswerResult = "timeout"
)

type EventAnswerResolved struct {
	Result     AnswerResult
	Points     int
	Difficulty Difficulty
}

func (EventAnswerResolved) Name() string { return EventNameAnswerResolved }

type EventLevelUp struct {
	Level int
}

func (EventLevelUp) Name() string { return EventNameLevelUp }

type EventAchievementUnlocked struct {
	Unlocked []AchievementID
	Ledger   Ledger
}

func (EventAchievementUnlocked) Name() string { return EventNameAchievementUnlocked }

type EventPersonalBest struct {
	Score int
}

func (EventPersonalBest) Name() string { return EventNamePersonalBest }

type EventGameFinished struct {
	Entry LeaderboardEntry
	Rank  int
}

func (EventGameFinished) Name() string { return EventNameGameFinished }

type EventPowerUpActivated struct {
	PowerUp PowerUpID
	Title   string
}

func (EventPowerUpActivated) Name() string { return EventNamePowerUpActivated }

type EventDailyChallengeCompleted struct {
	Challenge Challenge
}

func (EventDailyChallengeCompleted) Name() string { return EventNameDailyChallengeCompleted }

type EventDailyChallengeClaimed struct {
	Challenge Challenge
}

func (EventDailyChallengeClaimed) Name() string { return EventNameDailyChallengeClaimed }

type EventSettingsSaved struct {
	Settings Settings
}

func (EventSettingsSaved) Name() string { return EventNameSettingsSaved }

const EventNamePersistenceFailed = "persistence.failed"

// EventPersistenceFailed reports a snapshot write that was dropped. The in-memory state stays authoritative.
type EventPersistenceFailed struct {
	Key string
	Err error
}

func (EventPersistenceFailed) Name() string { return EventNamePersistenceFailed }
