package achievements

import "time"

// Achievement categories
const (
	CategoryContent    = "conteudo"
	CategoryWorkout    = "treino"
	CategoryStreak     = "sequencia"
	CategoryDedication = "dedicacao"
	CategorySpecial    = "especial"
	CategoryCommunity  = "comunidade"
)

// achievementCatalog is the fixed default set seeded into empty state
var achievementCatalog = []Achievement{
	{
		ID:             "first_video",
		Title:          "Primeiro Play",
		Description:    "Assista seu primeiro vídeo de treino",
		Category:       CategoryContent,
		Type:           TypeMilestone,
		Requirement:    1,
		Reward:         Reward{XP: 25},
		Rarity:         RarityCommon,
		ProgressSource: SourceMirrorVideos,
	},
	{
		ID:             "video_marathon",
		Title:          "Maratonista de Conteúdo",
		Description:    "Assista 50 vídeos",
		Category:       CategoryContent,
		Type:           TypeTotal,
		Requirement:    50,
		Reward:         Reward{XP: 150, Badge: "maratonista"},
		Rarity:         RarityRare,
		ProgressSource: SourceMirrorVideos,
	},
	{
		ID:             "first_workout",
		Title:          "Primeiro Treino",
		Description:    "Complete seu primeiro treino",
		Category:       CategoryWorkout,
		Type:           TypeMilestone,
		Requirement:    1,
		Reward:         Reward{XP: 50, Title: "Iniciante Dedicado"},
		Rarity:         RarityCommon,
		ProgressSource: SourceMirrorWorkouts,
	},
	{
		ID:             "workout_warrior",
		Title:          "Guerreiro do Treino",
		Description:    "Complete 25 treinos",
		Category:       CategoryWorkout,
		Type:           TypeTotal,
		Requirement:    25,
		Reward:         Reward{XP: 200, Badge: "guerreiro"},
		Rarity:         RarityRare,
		ProgressSource: SourceMirrorWorkouts,
	},
	{
		ID:             "century_club",
		Title:          "Clube dos 100",
		Description:    "Complete 100 treinos",
		Category:       CategoryWorkout,
		Type:           TypeTotal,
		Requirement:    100,
		Reward:         Reward{XP: 500, Title: "Centurião"},
		Rarity:         RarityEpic,
		ProgressSource: SourceMirrorWorkouts,
	},
	{
		ID:             "streak_week",
		Title:          "Semana Perfeita",
		Description:    "Mantenha uma sequência de 7 dias",
		Category:       CategoryStreak,
		Type:           TypeStreak,
		Requirement:    7,
		Reward:         Reward{XP: 100},
		Rarity:         RarityRare,
		ProgressSource: SourceMirrorStreak,
	},
	{
		ID:             "streak_month",
		Title:          "Mês Imparável",
		Description:    "Mantenha uma sequência de 30 dias",
		Category:       CategoryStreak,
		Type:           TypeStreak,
		Requirement:    30,
		Reward:         Reward{XP: 400, Title: "Imparável"},
		Rarity:         RarityEpic,
		ProgressSource: SourceMirrorStreak,
	},
	{
		ID:             "time_invested",
		Title:          "Tempo Bem Investido",
		Description:    "Acumule 1000 minutos de atividade",
		Category:       CategoryDedication,
		Type:           TypeTotal,
		Requirement:    1000,
		Reward:         Reward{XP: 250, Badge: "dedicado"},
		Rarity:         RarityRare,
		ProgressSource: SourceCounterMinutes,
	},
	{
		ID:             "early_bird",
		Title:          "Madrugador",
		Description:    "Complete um treino antes das 7h",
		Category:       CategorySpecial,
		Type:           TypeSpecial,
		Requirement:    1,
		Reward:         Reward{XP: 75},
		Rarity:         RarityRare,
		ProgressSource: SourceEarlyBird,
	},
	{
		ID:             "night_owl",
		Title:          "Coruja Noturna",
		Description:    "Complete um treino depois das 22h",
		Category:       CategorySpecial,
		Type:           TypeSpecial,
		Requirement:    1,
		Reward:         Reward{XP: 75},
		Rarity:         RarityRare,
		ProgressSource: SourceNightOwl,
	},
}

// challengeCatalog builds the default challenges with windows anchored on
// the seed time
func challengeCatalog(now time.Time) []Challenge {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	weekStart := dayStart
	for weekStart.Weekday() != time.Monday {
		weekStart = weekStart.AddDate(0, 0, -1)
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	return []Challenge{
		{
			ID:          "daily_mover",
			Title:       "Movimento Diário",
			Description: "Complete um treino e assista um vídeo hoje",
			Category:    ChallengeDaily,
			Difficulty:  "easy",
			StartDate:   dayStart,
			EndDate:     dayStart.AddDate(0, 0, 1),
			Requirements: []Requirement{
				{Type: EventWorkoutCompleted, Target: 1, Description: "Complete 1 treino"},
				{Type: EventVideoWatched, Target: 1, Description: "Assista 1 vídeo"},
			},
			Rewards: Reward{XP: 50},
		},
		{
			ID:          "weekly_consistency",
			Title:       "Consistência Semanal",
			Description: "Treine 3 vezes e acumule 90 minutos nesta semana",
			Category:    ChallengeWeekly,
			Difficulty:  "medium",
			StartDate:   weekStart,
			EndDate:     weekStart.AddDate(0, 0, 7),
			Requirements: []Requirement{
				{Type: EventWorkoutCompleted, Target: 3, Description: "Complete 3 treinos"},
				{Type: EventTimeSpent, Target: 90, Description: "Acumule 90 minutos de atividade"},
			},
			Rewards: Reward{XP: 150},
		},
		{
			ID:          "monthly_transformation",
			Title:       "Transformação do Mês",
			Description: "12 treinos e 8 vídeos neste mês",
			Category:    ChallengeMonthly,
			Difficulty:  "hard",
			StartDate:   monthStart,
			EndDate:     monthStart.AddDate(0, 1, 0),
			Requirements: []Requirement{
				{Type: EventWorkoutCompleted, Target: 12, Description: "Complete 12 treinos"},
				{Type: EventVideoWatched, Target: 8, Description: "Assista 8 vídeos"},
			},
			Rewards: Reward{XP: 500, Badge: "transformacao"},
		},
	}
}

// seedState builds a fresh gamification state from the catalog
func seedState(now time.Time) *State {
	achievements := make([]Achievement, len(achievementCatalog))
	copy(achievements, achievementCatalog)

	return &State{
		Achievements:   achievements,
		Challenges:     challengeCatalog(now),
		Stats:          UserStats{CurrentLevel: 1, XPToNextLevel: XPForLevel(2), JoinDate: now, LastActivity: now},
		UnlockedTitles: []string{},
	}
}
