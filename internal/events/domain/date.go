package domain

import (
	"fmt"
	"time"
)

// Spanish calendar names. The blog's audience is Spanish-speaking, so every
// reader-facing date is rendered in es-ES form rather than Go's English
// reference layout.
var (
	spanishWeekdays = [...]string{
		"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado",
	}
	spanishMonths = [...]string{
		"enero", "febrero", "marzo", "abril", "mayo", "junio",
		"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
	}
)

// FormatDateLong renders "lunes, 2 de junio de 2025" (prompt dates)
func FormatDateLong(t time.Time) string {
	return fmt.Sprintf("%s, %d de %s de %d",
		spanishWeekdays[t.Weekday()], t.Day(), spanishMonths[t.Month()-1], t.Year())
}

// FormatDateMedium renders "2 de junio de 2025" (header-image caption)
func FormatDateMedium(t time.Time) string {
	return fmt.Sprintf("%d de %s de %d", t.Day(), spanishMonths[t.Month()-1], t.Year())
}

// FormatDateShort renders "2 de junio" (image SEO alt text)
func FormatDateShort(t time.Time) string {
	return fmt.Sprintf("%d de %s", t.Day(), spanishMonths[t.Month()-1])
}
