package ai

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// MockTranscription stands in for a transcription when the upstream call
// fails, so the fragment pipeline keeps moving.
func MockTranscription() string {
	return fmt.Sprintf("[Mock Transcription] Audio received at %s.", time.Now().Format("15:04:05"))
}

// MockQuiz returns a deterministic question set: a canned bank when the
// topic matches a known keyword, otherwise questions templated around the
// topic itself.
func MockQuiz(topic string, count int) []Question {
	lower := strings.ToLower(topic)

	var questions []Question
	switch {
	case strings.Contains(lower, "react"):
		questions = reactBank()
	case strings.Contains(lower, "javascript"), strings.Contains(lower, "js"):
		questions = javascriptBank()
	default:
		questions = genericBank(topic)
	}

	if count > 0 && count < len(questions) {
		questions = questions[:count]
	}
	return questions
}

func reactBank() []Question {
	return []Question{
		{
			Question:    "What is the primary purpose of React's useEffect hook?",
			Options:     []string{"To handle side effects in functional components", "To manage global state", "To create new components", "To optimize rendering speed"},
			Answer:      "To handle side effects in functional components",
			Explanation: "useEffect is designed to handle side effects like data fetching, subscriptions, and DOM updates.",
		},
		{
			Question:    "Which of the following is NOT a rule of Hooks?",
			Options:     []string{"Hooks can be called inside loops", "Hooks must be called at the top level", "Hooks must be called from React functions", "Hooks cannot be conditional"},
			Answer:      "Hooks can be called inside loops",
			Explanation: "Hooks must always be called at the top level of your React function, not inside loops, conditions, or nested functions.",
		},
		{
			Question:    "What is the virtual DOM in React?",
			Options:     []string{"A lightweight copy of the real DOM", "A direct reference to the browser DOM", "A database for React components", "A third-party library"},
			Answer:      "A lightweight copy of the real DOM",
			Explanation: "The virtual DOM is a lightweight JavaScript representation of the DOM that React uses to optimize updates.",
		},
		{
			Question:    "How do you pass data from a parent to a child component?",
			Options:     []string{"Using props", "Using state", "Using Redux", "Using local storage"},
			Answer:      "Using props",
			Explanation: "Props (properties) are the standard way to pass data from parent to child components in React.",
		},
		{
			Question:    "What is the purpose of the useState hook?",
			Options:     []string{"To add state to functional components", "To fetch data from an API", "To route between pages", "To style components"},
			Answer:      "To add state to functional components",
			Explanation: "useState allows functional components to maintain and update their own internal state.",
		},
	}
}

func javascriptBank() []Question {
	return []Question{
		{
			Question:    "Which keyword is used to declare a constant variable in JavaScript?",
			Options:     []string{"const", "let", "var", "fixed"},
			Answer:      "const",
			Explanation: "The 'const' keyword is used to declare variables that cannot be reassigned.",
		},
		{
			Question:    "What is the output of '2' + 2 in JavaScript?",
			Options:     []string{"'22'", "4", "NaN", "Error"},
			Answer:      "'22'",
			Explanation: "JavaScript performs string concatenation when the + operator is used with a string.",
		},
		{
			Question:    "What is a closure in JavaScript?",
			Options:     []string{"A function bundled with its lexical environment", "A way to close a browser window", "A method to end a loop", "A database connection"},
			Answer:      "A function bundled with its lexical environment",
			Explanation: "A closure gives you access to an outer function's scope from an inner function.",
		},
		{
			Question:    "Which method is used to add an element to the end of an array?",
			Options:     []string{"push()", "pop()", "shift()", "unshift()"},
			Answer:      "push()",
			Explanation: "The push() method adds one or more elements to the end of an array.",
		},
		{
			Question:    "What does 'DOM' stand for?",
			Options:     []string{"Document Object Model", "Data Object Mode", "Document Oriented Module", "Digital Ordinance Model"},
			Answer:      "Document Object Model",
			Explanation: "The DOM is a programming interface for web documents.",
		},
	}
}

func genericBank(topic string) []Question {
	title := topic
	if title != "" {
		first, size := utf8.DecodeRuneInString(title)
		title = string(unicode.ToUpper(first)) + title[size:]
	}

	return []Question{
		{
			Question:    fmt.Sprintf("What is the primary function of %s?", title),
			Options:     []string{"To facilitate core operations in its domain", "To reduce system performance", "To increase code complexity", "To replace all other technologies"},
			Answer:      "To facilitate core operations in its domain",
			Explanation: fmt.Sprintf("%s is designed to solve specific problems efficiently within its context.", title),
		},
		{
			Question:    fmt.Sprintf("Which of the following is a key benefit of using %s?", title),
			Options:     []string{"Improved efficiency and scalability", "Higher cost of implementation", "Slower processing times", "Limited compatibility"},
			Answer:      "Improved efficiency and scalability",
			Explanation: fmt.Sprintf("One of the main reasons to adopt %s is the improvement in workflow and scalability.", title),
		},
		{
			Question:    fmt.Sprintf("In a typical workflow, when would you implement %s?", title),
			Options:     []string{"During the initial setup or optimization phase", "Only after the project is deleted", "Never, it is obsolete", "Randomly without planning"},
			Answer:      "During the initial setup or optimization phase",
			Explanation: fmt.Sprintf("Implementing %s at the right stage ensures better structure and performance.", title),
		},
		{
			Question:    fmt.Sprintf("What is a common challenge associated with %s?", title),
			Options:     []string{"Learning curve for beginners", "It is too easy to use", "It requires no configuration", "It works without electricity"},
			Answer:      "Learning curve for beginners",
			Explanation: fmt.Sprintf("Like many advanced concepts, %s can be challenging to master initially.", title),
		},
		{
			Question:    fmt.Sprintf("Which industry standard is often associated with %s?", title),
			Options:     []string{"Modern best practices", "Legacy systems from the 1990s", "Manual paper processing", "Single-user environments"},
			Answer:      "Modern best practices",
			Explanation: fmt.Sprintf("%s is often aligned with current industry standards and best practices.", title),
		},
	}
}
