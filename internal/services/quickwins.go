package services

import "math/rand"

// QuickWin is one short actionable suggestion drawn from a fixed
// per-category pool.
type QuickWin struct {
	Emoji           string            `json:"emoji"`
	TitleI18n       map[string]string `json:"title_i18n"`
	DescriptionI18n map[string]string `json:"description_i18n"`
	DurationI18n    map[string]string `json:"duration_i18n"`
	LabelI18n       map[string]string `json:"label_i18n"`
}

// QuickWinView is a quick win localized for one language.
type QuickWinView struct {
	Emoji       string `json:"emoji"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Duration    string `json:"duration"`
	Category    string `json:"category"`
}

// Localize resolves the i18n maps for the given locale, falling back to Korean
// (the source language of the pools).
func (q QuickWin) Localize(locale string) QuickWinView {
	pick := func(m map[string]string) string {
		if v, ok := m[locale]; ok && v != "" {
			return v
		}
		return m["ko"]
	}
	return QuickWinView{
		Emoji:       q.Emoji,
		Title:       pick(q.TitleI18n),
		Description: pick(q.DescriptionI18n),
		Duration:    pick(q.DurationI18n),
		Category:    pick(q.LabelI18n),
	}
}

func win(emoji, titleKo, titleEn, descKo, descEn, durKo, durEn, labelKo, labelEn string) QuickWin {
	return QuickWin{
		Emoji:           emoji,
		TitleI18n:       stem(titleKo, titleEn),
		DescriptionI18n: stem(descKo, descEn),
		DurationI18n:    stem(durKo, durEn),
		LabelI18n:       stem(labelKo, labelEn),
	}
}

// quickWinPools holds the fixed candidate missions per category.
var quickWinPools = map[Category][]QuickWin{
	CategoryEmotional: {
		win("🚪", "8시 탈출 작전", "The 8 PM escape plan",
			"오늘 저녁 8시, 노트북을 닫고 당당히 퇴근하세요. 세상이 무너지지 않아요!", "Tonight at 8, close the laptop and leave with your head high. The world will not end!",
			"오늘 저녁", "Tonight", "감정 회복", "Emotional recovery"),
		win("🧘", "5분 명상 챌린지", "5-minute meditation challenge",
			"화장실 가는 척하고 5분만 눈 감고 숨쉬기. 아무도 모를 거예요.", "Pretend you are off to the restroom, close your eyes and just breathe for 5 minutes. Nobody will know.",
			"5분", "5 min", "감정 회복", "Emotional recovery"),
		win("🚶", "점심 산책 미션", "Lunch walk mission",
			"점심 먹고 10분만 걸어요. 소화도 되고 머리도 맑아져요!", "Walk for 10 minutes after lunch. Good for digestion, great for a clear head!",
			"10분", "10 min", "감정 회복", "Emotional recovery"),
	},
	CategoryAccomplishment: {
		win("🏆", "작은 승리 일기", "Small wins journal",
			"오늘 내가 해낸 일 3개를 적어보세요. '커피 안 엎음'도 성과예요!", "Write down 3 things you pulled off today. 'Did not spill the coffee' counts!",
			"3분", "3 min", "성취감 충전", "Accomplishment refill"),
		win("💝", "칭찬 릴레이", "Compliment relay",
			"동료에게 진심 담긴 칭찬 한 마디. 부메랑처럼 돌아올 거예요.", "Give a colleague one sincere compliment. It will come back like a boomerang.",
			"1분", "1 min", "성취감 충전", "Accomplishment refill"),
		win("🎁", "나만의 보상", "Your own reward",
			"작은 목표 달성하면 좋아하는 간식 먹기. 당신은 그럴 자격이 있어요!", "Hit a small goal, have your favorite snack. You deserve it!",
			"즉시", "Right away", "성취감 충전", "Accomplishment refill"),
	},
	CategoryPhysical: {
		win("😴", "11시 수면 약속", "The 11 PM sleep pact",
			"오늘 밤 11시엔 꼭 침대로! 넷플릭스는 내일도 있어요.", "In bed by 11 tonight! Netflix will still be there tomorrow.",
			"오늘 밤", "Tonight", "신체 회복", "Physical recovery"),
		win("💧", "물 마시기 게임", "Water drinking game",
			"커피 대신 물 한 잔. 카페인 말고 수분으로 충전해요!", "A glass of water instead of coffee. Recharge with hydration, not caffeine!",
			"지금", "Now", "신체 회복", "Physical recovery"),
		win("🤸", "스트레칭 알람", "Stretching alarm",
			"2시간마다 스트레칭 알람. 거북목이 되기 전에!", "A stretch alarm every 2 hours, before tech neck sets in!",
			"2분", "2 min", "신체 회복", "Physical recovery"),
	},
	CategoryOrganizational: {
		win("🙅", "거절의 기술", "The art of saying no",
			"오늘 불필요한 회의 하나만 정중히 거절해보세요. 세계가 멸망하지 않아요!", "Politely decline one unnecessary meeting today. The world will not collapse!",
			"오늘", "Today", "관계 정리", "Boundary setting"),
		win("📵", "디지털 디톡스", "Digital detox",
			"1시간만 메신저 알림 끄기. 진짜 급한 일은 전화로 올 거예요.", "Mute messenger notifications for one hour. Anything truly urgent will arrive by phone.",
			"1시간", "1 hour", "관계 정리", "Boundary setting"),
		win("☕", "커피 브레이크", "Coffee break",
			"동료와 가벼운 수다 타임. 일 얘기 금지!", "Light small talk with a colleague. No work talk allowed!",
			"15분", "15 min", "관계 정리", "Boundary setting"),
	},
	CategoryImpersonal: {
		win("💭", "나의 즐거움 찾기", "Find your joy",
			"일과 무관하게 내가 좋아하는 것 3개 떠올리기. 아직 잊지 않았어요!", "Think of 3 things you love that have nothing to do with work. You have not forgotten them!",
			"3분", "3 min", "자아 회복", "Self recovery"),
		win("🎯", "70% 법칙", "The 70% rule",
			"완벽하지 않아도 괜찮아요. 70%만 해도 충분해요!", "It does not have to be perfect. 70% is plenty!",
			"지금부터", "From now on", "자아 회복", "Self recovery"),
		win("🌟", "나만의 시간", "Time for yourself",
			"오늘 30분은 오직 나를 위해. 뭘 해도 좋아요!", "30 minutes today just for you. Anything goes!",
			"30분", "30 min", "자아 회복", "Self recovery"),
	},
}

// universalQuickWin always closes the recommendation list.
var universalQuickWin = win("🌬️", "즉시 실천! 심호흡", "Do it now! Deep breaths",
	"지금 바로 3번 깊게 숨쉬기. 1초 만에 시작할 수 있는 가장 쉬운 미션!", "Take 3 deep breaths right now. The easiest mission you can start within a second!",
	"10초", "10 sec", "즉시 실천", "Instant action")

// QuickWinSelector picks recommendations biased toward the worst categories.
// The pick function is the injectable randomness source; it must be safe for
// concurrent use.
type QuickWinSelector struct {
	pick func(n int) int
}

// NewQuickWinSelector returns a selector backed by math/rand's shared source.
func NewQuickWinSelector() *QuickWinSelector {
	return &QuickWinSelector{pick: rand.Intn}
}

// NewQuickWinSelectorWithPick returns a selector with a caller-supplied
// randomness source, for deterministic tests.
func NewQuickWinSelectorWithPick(pick func(n int) int) *QuickWinSelector {
	return &QuickWinSelector{pick: pick}
}

// Select returns 1-3 quick wins: one from the highest-scoring category when
// its score exceeds 50, one from the second when it exceeds 40, always closed
// by the universal quick win and truncated to 3 entries.
func (s *QuickWinSelector) Select(scores CategoryScores) []QuickWin {
	type ranked struct {
		cat   Category
		score float64
	}
	order := make([]ranked, 0, len(Categories))
	for _, c := range Categories {
		order = append(order, ranked{cat: c, score: scores.Get(c)})
	}
	// stable insertion sort, descending by score
	for i := 1; i < len(order); i++ {
		for j := i; j > 0 && order[j].score > order[j-1].score; j-- {
			order[j], order[j-1] = order[j-1], order[j]
		}
	}

	var wins []QuickWin
	if order[0].score > 50 {
		pool := quickWinPools[order[0].cat]
		wins = append(wins, pool[s.pick(len(pool))])
	}
	if order[1].score > 40 {
		pool := quickWinPools[order[1].cat]
		wins = append(wins, pool[s.pick(len(pool))])
	}
	wins = append(wins, universalQuickWin)
	if len(wins) > 3 {
		wins = wins[:3]
	}
	return wins
}
