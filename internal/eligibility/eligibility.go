package eligibility

import (
	"strings"

	"github.com/aleksmelnikov/meme-annotator/internal/entity"
)

// Токены, по которым имя/тайтл считается неизвестным. Сравнение - по подстроке,
// без учёта регистра. Имя, содержащее "Unknown" как часть настоящего названия,
// тоже отсеется - известный ложноположительный случай, оставлен намеренно.
var forbiddenTokens = []string{
	"unknown",
	"uncredited",
	"n/a",
	"not available",
	"character unknown",
}

func IsUnknownToken(text string) bool {
	if text == "" {
		return true
	}

	lower := strings.ToLower(text)
	for _, token := range forbiddenTokens {
		if strings.Contains(lower, token) {
			return true
		}
	}

	return false
}

func FilterActors(actors []entity.Actor) []entity.Actor {
	valid := make([]entity.Actor, 0, len(actors))
	for _, a := range actors {
		if !IsUnknownToken(a.Name) {
			valid = append(valid, a)
		}
	}

	return valid
}

func FilterDialogs(dialogs []entity.Dialog) []entity.Dialog {
	valid := make([]entity.Dialog, 0, len(dialogs))
	for _, d := range dialogs {
		if !IsUnknownToken(d.Actor) {
			valid = append(valid, d)
		}
	}

	return valid
}

// IsSubmittable - пост пригоден к отправке в каталог: тайтл распознан
// и после фильтрации остался хотя бы один актёр.
func IsSubmittable(post *entity.Post) bool {
	if post.Attributes == nil {
		return false
	}

	if IsUnknownToken(post.Attributes.Title) {
		return false
	}

	return len(FilterActors(post.Attributes.Actors)) > 0
}
