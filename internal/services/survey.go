package services

// Category is one of the five burnout dimensions scored independently
// before being combined into the ABO index.
type Category string

const (
	CategoryEmotional      Category = "em" // emotional exhaustion
	CategoryAccomplishment Category = "pe" // reduced personal accomplishment
	CategoryPhysical       Category = "ph" // physical exhaustion
	CategoryOrganizational Category = "or" // organizational conflict
	CategoryImpersonal     Category = "im" // depersonalization
)

// Categories lists all dimensions in their canonical order.
var Categories = []Category{
	CategoryEmotional,
	CategoryAccomplishment,
	CategoryPhysical,
	CategoryOrganizational,
	CategoryImpersonal,
}

// Question is a single survey item on a 5-point Likert scale.
// Reversed items are phrased in the opposite sense of their category and
// are inverted (6-v) before aggregation.
type Question struct {
	ID       int               `json:"id"`
	Category Category          `json:"category"`
	Reversed bool              `json:"reversed,omitempty"`
	StemI18n map[string]string `json:"stem_i18n"`
}

func stem(ko, en string) map[string]string { return map[string]string{"ko": ko, "en": en} }

// Questions is the fixed 39-item ABO survey. Item ids, category boundaries
// (em 1-14, pe 15-18, ph 19-24, or 25-35, im 36-39) and the reversed set
// {12, 14} are domain-calibrated constants.
var Questions = []Question{
	{ID: 1, Category: CategoryEmotional, StemI18n: stem("나의 업무는 중요하지 않다.", "My work is not important.")},
	{ID: 2, Category: CategoryEmotional, StemI18n: stem("업무를 생각하면 무기력해진다.", "Thinking about work makes me feel helpless.")},
	{ID: 3, Category: CategoryEmotional, StemI18n: stem("업무를 계속할 의욕이 없다.", "I have no motivation to keep working.")},
	{ID: 4, Category: CategoryEmotional, StemI18n: stem("업무를 생각하면 바다른 길에 서있는 것 같다.", "Thinking about work, I feel like I am standing at a dead end.")},
	{ID: 5, Category: CategoryEmotional, StemI18n: stem("업무를 생각하면 기진맥진한 느낌이 든다.", "Thinking about work leaves me feeling drained.")},
	{ID: 6, Category: CategoryEmotional, StemI18n: stem("퇴근할 때쯤이면 녹초가 된다.", "By the time I leave work I am completely worn out.")},
	{ID: 7, Category: CategoryEmotional, StemI18n: stem("아침에 출근할 생각만 해도 피곤하다.", "Just thinking about going to work in the morning makes me tired.")},
	{ID: 8, Category: CategoryEmotional, StemI18n: stem("업무를 생각하면 결근을 하고 싶다.", "Thinking about work makes me want to call in absent.")},
	{ID: 9, Category: CategoryEmotional, StemI18n: stem("업무 때문에 가슴이 답답하다.", "Work makes my chest feel tight.")},
	{ID: 10, Category: CategoryEmotional, StemI18n: stem("업무를 생각하면 짜증이 난다.", "Thinking about work irritates me.")},
	{ID: 11, Category: CategoryEmotional, StemI18n: stem("삶의 의미가 느껴지지 않는다.", "Life feels meaningless.")},
	{ID: 12, Category: CategoryEmotional, Reversed: true, StemI18n: stem("퇴근 이후 다양한 여가활동 참여 생각에 즐겁다.", "I look forward to leisure activities after work.")},
	{ID: 13, Category: CategoryEmotional, StemI18n: stem("예전과 달리 업무에 대한 열정이 없다.", "Unlike before, I have no passion for my work.")},
	{ID: 14, Category: CategoryEmotional, Reversed: true, StemI18n: stem("업무를 통해서 내가 성장하고 있음을 느낀다.", "I feel that I am growing through my work.")},

	{ID: 15, Category: CategoryAccomplishment, StemI18n: stem("업무로 인해 좌절감을 느낀다.", "My work makes me feel frustrated.")},
	{ID: 16, Category: CategoryAccomplishment, StemI18n: stem("직장 내 구성원들에 비해 성과에 대한 보상이 없다.", "Compared to my colleagues, my achievements go unrewarded.")},
	{ID: 17, Category: CategoryAccomplishment, StemI18n: stem("과중한 업무로 인해 개인시간이 없다.", "My workload leaves me no personal time.")},
	{ID: 18, Category: CategoryAccomplishment, StemI18n: stem("더 이상 보람을 느끼지 못한다.", "I no longer feel a sense of fulfillment.")},

	{ID: 19, Category: CategoryPhysical, StemI18n: stem("업무 스트레스로 인해 잠을 깊게 자지 못한다.", "Work stress keeps me from sleeping deeply.")},
	{ID: 20, Category: CategoryPhysical, StemI18n: stem("업무 스트레스로 인해 수시로 피곤함을 느낀다.", "Work stress makes me feel tired all the time.")},
	{ID: 21, Category: CategoryPhysical, StemI18n: stem("업무 스트레스로 인해 두통이 심해진다.", "Work stress worsens my headaches.")},
	{ID: 22, Category: CategoryPhysical, StemI18n: stem("업무 스트레스로 인해 소화불량이 심해진다.", "Work stress worsens my indigestion.")},
	{ID: 23, Category: CategoryPhysical, StemI18n: stem("업무 스트레스로 인해 신체적인 이상이 생긴 것 같다.", "I think work stress has caused physical problems for me.")},
	{ID: 24, Category: CategoryPhysical, StemI18n: stem("퇴근 이후에 몸이 아프다.", "My body aches after work.")},

	{ID: 25, Category: CategoryOrganizational, StemI18n: stem("더 이상 출근하고 싶지 않다.", "I no longer want to go to work.")},
	{ID: 26, Category: CategoryOrganizational, StemI18n: stem("더 이상 직장 내 구성원들과 대화하고 싶지 않다.", "I no longer want to talk with the people at my workplace.")},
	{ID: 27, Category: CategoryOrganizational, StemI18n: stem("직장 내 구성원과 감정싸움에 지친다.", "I am exhausted by emotional battles with coworkers.")},
	{ID: 28, Category: CategoryOrganizational, StemI18n: stem("직장 내 구성원들이 나에게 고통을 주는 존재로 느껴진다.", "The people at work feel like a source of pain to me.")},
	{ID: 29, Category: CategoryOrganizational, StemI18n: stem("직장 내 구성원들이 나에게만 업무를 미루는 것 같다.", "I feel coworkers push their work onto me alone.")},
	{ID: 30, Category: CategoryOrganizational, StemI18n: stem("직장 내 구성원들과 함께 일하는 것에 스트레스를 받는다.", "Working together with my coworkers stresses me.")},
	{ID: 31, Category: CategoryOrganizational, StemI18n: stem("직장 내 구성원의 기대로 부담감을 느낀다.", "I feel burdened by coworkers' expectations.")},
	{ID: 32, Category: CategoryOrganizational, StemI18n: stem("내 조직의 업무환경이 좋지 않다.", "My organization's work environment is poor.")},
	{ID: 33, Category: CategoryOrganizational, StemI18n: stem("근무시간 외에는 업무와 관련된 생각을 하고 싶지 않다.", "Outside working hours I do not want to think about work at all.")},
	{ID: 34, Category: CategoryOrganizational, StemI18n: stem("근무시간 외에 업무와 관련된 연락이 오면 화가 난다.", "Work-related contact outside working hours makes me angry.")},
	{ID: 35, Category: CategoryOrganizational, StemI18n: stem("조직 내에서 나의 존재가 점점 사라지고 있다.", "My presence in the organization is gradually disappearing.")},

	{ID: 36, Category: CategoryImpersonal, StemI18n: stem("업무를 생각하면 이직을 하고 싶다.", "Thinking about work makes me want to change jobs.")},
	{ID: 37, Category: CategoryImpersonal, StemI18n: stem("내 자신이 조직의 부속품으로 느껴진다.", "I feel like a replaceable part of the organization.")},
	{ID: 38, Category: CategoryImpersonal, StemI18n: stem("업무상 만나는 사람을 물건처럼 대하고 있다.", "I treat the people I meet through work like objects.")},
	{ID: 39, Category: CategoryImpersonal, StemI18n: stem("나는 직무를 기계적으로 처리하고 있다.", "I handle my duties mechanically.")},
}

// CategoryNameI18n maps each category to its display name.
var CategoryNameI18n = map[Category]map[string]string{
	CategoryEmotional:      stem("감정적·정서적 고갈", "Emotional exhaustion"),
	CategoryAccomplishment: stem("개인성취감 감소", "Reduced personal accomplishment"),
	CategoryPhysical:       stem("신체적·생리적 고갈", "Physical exhaustion"),
	CategoryOrganizational: stem("조직갈등", "Organizational conflict"),
	CategoryImpersonal:     stem("비인격화", "Depersonalization"),
}

// CategoryDescriptionI18n maps each category to a one-line description.
var CategoryDescriptionI18n = map[Category]map[string]string{
	CategoryEmotional:      stem("업무에 대한 열정과 의미를 잃어가고 있는 상태", "Losing passion for and meaning in one's work"),
	CategoryAccomplishment: stem("성취감과 보람을 느끼지 못하는 상태", "Unable to feel achievement or fulfillment"),
	CategoryPhysical:       stem("신체적으로 지치고 건강에 이상이 생기는 상태", "Physically worn out with emerging health problems"),
	CategoryOrganizational: stem("조직 및 동료와의 관계에서 갈등을 겪는 상태", "In conflict with the organization and colleagues"),
	CategoryImpersonal:     stem("자신과 타인을 인격체로 대하지 못하는 상태", "Unable to treat oneself and others as persons"),
}

var questionsByID = func() map[int]Question {
	m := make(map[int]Question, len(Questions))
	for _, q := range Questions {
		m[q.ID] = q
	}
	return m
}()

// QuestionByID returns the question with the given id, if defined.
func QuestionByID(id int) (Question, bool) {
	q, ok := questionsByID[id]
	return q, ok
}
