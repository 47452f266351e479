// Package survey формирует анкету выходного опроса по курсу:
// общие вопросы плюс случайная выборка из дополнительного пула.
package survey

import (
	"math/rand"
	"sort"
)

// Типы вопросов анкеты.
const (
	TypeCheckbox    = "checkbox"
	TypeRadio       = "radio"
	TypeSelectMany  = "select_many"
	TypeShortField  = "short_field"
	TypeMediumField = "medium_field"
)

// Question описывает один вопрос анкеты.
type Question struct {
	Type    string   `json:"type"`
	Name    string   `json:"question_name"`
	Label   string   `json:"label"`
	Choices []string `json:"choices,omitempty"`
}

// Service формирует анкеты. В отладочном режиме показываются все
// вопросы пула вместо случайной выборки.
type Service struct {
	common      []Question
	pool        []Question
	randomCount int
	debugAll    bool
}

// New создает новый экземпляр Service со стандартным набором вопросов.
func New(randomCount int, debugAll bool) *Service {
	return &Service{
		common:      commonQuestions,
		pool:        randomQuestions,
		randomCount: randomCount,
		debugAll:    debugAll,
	}
}

// Questions возвращает список вопросов анкеты: сначала общие вопросы,
// затем выборка из пула. Выборка делается по индексам с последующей
// сортировкой, так что вопросы пула сохраняют свой исходный порядок.
// Если запрошено больше вопросов, чем есть в пуле, возвращается весь пул.
func (s *Service) Questions() []Question {
	chosen := s.pool
	if !s.debugAll && s.randomCount < len(s.pool) {
		indices := rand.Perm(len(s.pool))[:s.randomCount]
		sort.Ints(indices)

		chosen = make([]Question, 0, len(indices))
		for _, i := range indices {
			chosen = append(chosen, s.pool[i])
		}
	}

	list := make([]Question, 0, len(s.common)+len(chosen))
	list = append(list, s.common...)
	list = append(list, chosen...)
	return list
}

var commonQuestions = []Question{
	{
		Type:  TypeCheckbox,
		Name:  "future_classes",
		Label: "Please inform me of future classes offered on this platform.",
	},
	{
		Type:  TypeCheckbox,
		Name:  "future_offerings",
		Label: "Please inform me of opportunities to help with future offerings of this course, such as staffing discussion forums or developing content.",
	},
	{
		Type:  TypeCheckbox,
		Name:  "future_updates",
		Label: "Please subscribe me to periodic updates about additional topics, refreshers, and follow-ups for topics in this course.",
	},
	{
		Type:  TypeMediumField,
		Name:  "favorite_parts",
		Label: "What were your favorite parts of this course? We would love to hear your comments on the course or the platform.",
	},
	{
		Type:  TypeRadio,
		Name:  "rating",
		Label: "How would you rate this course?",
		Choices: []string{
			"1 - I hated it. I didn't learn anything.",
			"2",
			"3",
			"4 - It was pretty good, but could use some improvement.",
			"5",
			"6",
			"7 - Absolutely amazing. I learned a great deal.",
		},
	},
}

var randomQuestions = []Question{
	{
		Type:  TypeRadio,
		Name:  "university_comparison",
		Label: "How would you compare this course to an equivalent university course, if you have taken one?",
		Choices: []string{
			"This course was much worse than the university class.",
			"This course was on the same level as the university class.",
			"This course was much better than the university class.",
			"I have not taken an equivalent university class.",
		},
	},
	{
		Type:  TypeSelectMany,
		Name:  "smartphone_usage",
		Label: "Are you interested in taking courses from a mobile device, such as a smartphone? (Check all that apply.)",
		Choices: []string{
			"I would like to use a mobile device as my primary way of taking courses.",
			"I would like to use a mobile device to sometimes access courses.",
			"I would not like to use a mobile device with courses.",
			"I use an Android device.",
			"I use an iPhone or iPod Touch.",
			"I use an iPad.",
			"I use a different internet-capable mobile device.",
			"I do not use an internet-capable mobile device.",
		},
	},
	{
		Type:  TypeMediumField,
		Name:  "improvement_ideas",
		Label: "Do you have any ideas on how to improve this course or the platform?",
	},
	{
		Type:  TypeRadio,
		Name:  "highest_degree",
		Label: "What is the highest degree you have completed?",
		Choices: []string{
			"PhD in a science or engineering field.",
			"PhD in another field.",
			"Master's or professional degree.",
			"Bachelor's degree.",
			"Secondary/high school.",
			"Junior secondary/high school.",
			"Elementary/primary school.",
		},
	},
	{
		Type:  TypeShortField,
		Name:  "age",
		Label: "What is your age?",
	},
	{
		Type:  TypeRadio,
		Name:  "gender",
		Label: "What is your gender?",
		Choices: []string{
			"Female",
			"Male",
			"Other",
		},
	},
	{
		Type:  TypeRadio,
		Name:  "math_level",
		Label: "What was your calculus background prior to this course?",
		Choices: []string{
			"Vector calculus or differential equations",
			"Single variable calculus",
			"No calculus",
		},
	},
	{
		Type:  TypeSelectMany,
		Name:  "why_course",
		Label: "Why are you taking this course? (Check all that apply.)",
		Choices: []string{
			"Interest in topic",
			"Preparation for advanced standing exam",
			"Review of concepts",
			"Employment/job advancement opportunities",
			"Other",
		},
	},
	{
		Type:  TypeShortField,
		Name:  "weekly_hours",
		Label: "How many hours per week on average did you work on this course?",
	},
	{
		Type:  TypeRadio,
		Name:  "internet_access",
		Label: "Where do you access the course website most frequently?",
		Choices: []string{
			"At home",
			"At the home of a friend or family member outside your home",
			"At school",
			"Internet cafe or other public space",
			"Other",
		},
	},
	{
		Type:  TypeRadio,
		Name:  "work_offline",
		Label: "Have you worked offline with anyone on the course material?",
		Choices: []string{
			"I worked with another person who is also completing the course.",
			"I worked with someone who teaches or has expertise in this area.",
			"I worked completely on my own.",
			"Other",
		},
	},
	{
		Type:  TypeRadio,
		Name:  "online_course_count",
		Label: "Including this one, how many online courses have you taken?",
		Choices: []string{
			"1",
			"2",
			"3",
			"4",
			"5 or more",
		},
	},
	{
		Type:  TypeShortField,
		Name:  "race",
		Label: "With what race/ethnic group do you most strongly identify?",
	},
	{
		Type:  TypeRadio,
		Name:  "book_count",
		Label: "How many books are there in your home? (There are usually about 40 books per meter of shelving. Do not include magazines, newspapers, or schoolbooks in your estimate.)",
		Choices: []string{
			"0-10 books",
			"11-25 books",
			"26-100 books",
			"101-200 books",
			"201-500 books",
			"More than 500 books",
		},
	},
	{
		Type:  TypeRadio,
		Name:  "computer_in_home",
		Label: "Did you have a computer in your home?",
		Choices: []string{
			"Yes",
			"No",
		},
	},
	{
		Type:  TypeRadio,
		Name:  "parents_engineering",
		Label: "Do either of your parents have any training or experience in engineering?",
		Choices: []string{
			"Yes",
			"No",
			"I don't know",
		},
	},
	{
		Type:  TypeRadio,
		Name:  "parents_education",
		Label: "What is the highest level of schooling completed by one of your parents? (Please choose the answer you think fits best.)",
		Choices: []string{
			"PhD degree",
			"Post-graduate, professional degree, or master's degree",
			"Bachelor's degree",
			"Vocational/technical training",
			"High school or secondary school",
			"Primary school",
			"Did not complete primary school",
		},
	},
}
