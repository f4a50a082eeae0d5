// Package streak — outcomes.go считает серии правильных ответов
// в упорядоченной последовательности попыток. Порядок задаёт вызывающий,
// здесь ничего не сортируется.
package streak

// Outcome — одна попытка: выбранный и правильный ответ.
// Пустая строка означает "ответа нет".
type Outcome struct {
	Selected string
	Correct  string
}

// AbsentPolicy определяет, как сравнивать два отсутствующих ответа.
type AbsentPolicy int

const (
	// AbsentIsIncorrect — попытка без ответа всегда неверна.
	AbsentIsIncorrect AbsentPolicy = iota
	// AbsentIsEqual — два пустых значения равны, то есть попытка верна.
	AbsentIsEqual
)

// Success сообщает, верна ли попытка при данной политике.
func (o Outcome) Success(policy AbsentPolicy) bool {
	if o.Selected == "" && o.Correct == "" {
		return policy == AbsentIsEqual
	}
	return o.Selected == o.Correct
}

// CorrectAnswerStreak возвращает серию верных ответов в конце
// последовательности (Current) и самую длинную серию где угодно (Longest).
//
//	[✓, ✓, ✗, ✓, ✓] → {2, 2}
//	[✓, ✓, ✗, ✗]    → {0, 2}
//	[✗, ✓, ✓]       → {2, 2}
func CorrectAnswerStreak(outcomes []Outcome, policy AbsentPolicy) Result {
	longest, temp := 0, 0
	for _, o := range outcomes {
		if o.Success(policy) {
			temp++
			if temp > longest {
				longest = temp
			}
		} else {
			temp = 0
		}
	}

	// Хвост считаем отдельным проходом с конца
	current := 0
	for i := len(outcomes) - 1; i >= 0; i-- {
		if !outcomes[i].Success(policy) {
			break
		}
		current++
	}

	return Result{Current: current, Longest: longest}
}
