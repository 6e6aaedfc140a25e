package chart

import (
	"golang.org/x/text/language"

	"github.com/boddenberg/fluxo-caixa-go/internal/domain"
)

// DefaultLocale is used when a requested locale cannot be matched.
const DefaultLocale = "pt-BR"

// localeSpec holds the date and number conventions of one locale.
// Layouts use explicit argument indexes: day, month name, year.
type localeSpec struct {
	name        string
	monthsShort [12]string
	monthsLong  [12]string

	dayMonth     string // day, month
	dayMonthYear string // day, month, year
	monthYear    string // month, year
	weekAxis     string // week number
	weekTooltip  string // week number, start, end

	decimalSep string
	groupSep   string
	symbolGap  string
	symbols    map[string]string

	periodLabels   map[domain.TimePeriod]string
	groupingLabels map[domain.DataGrouping]string
}

var ptBR = &localeSpec{
	name:        "pt-BR",
	monthsShort: [12]string{"jan.", "fev.", "mar.", "abr.", "mai.", "jun.", "jul.", "ago.", "set.", "out.", "nov.", "dez."},
	monthsLong:  [12]string{"janeiro", "fevereiro", "março", "abril", "maio", "junho", "julho", "agosto", "setembro", "outubro", "novembro", "dezembro"},

	dayMonth:     "%[1]d de %[2]s",
	dayMonthYear: "%[1]d de %[2]s de %[3]d",
	monthYear:    "%[1]s de %[2]d",
	weekAxis:     "Sem %d",
	weekTooltip:  "Semana %d (%s - %s)",

	decimalSep: ",",
	groupSep:   ".",
	symbolGap:  "\u00a0",
	symbols:    map[string]string{"BRL": "R$", "USD": "US$", "EUR": "€", "GBP": "£"},

	groupingLabels: map[domain.DataGrouping]string{
		domain.GroupingDaily:   "Diário",
		domain.GroupingWeekly:  "Semanal",
		domain.GroupingMonthly: "Mensal",
	},
}

var enUS = &localeSpec{
	name:        "en-US",
	monthsShort: [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
	monthsLong:  [12]string{"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"},

	dayMonth:     "%[2]s %[1]d",
	dayMonthYear: "%[2]s %[1]d, %[3]d",
	monthYear:    "%[1]s %[2]d",
	weekAxis:     "Week %d",
	weekTooltip:  "Week %d (%s - %s)",

	decimalSep: ".",
	groupSep:   ",",
	symbolGap:  "",
	symbols:    map[string]string{"BRL": "R$", "USD": "$", "EUR": "€", "GBP": "£"},

	periodLabels: map[domain.TimePeriod]string{
		domain.PeriodToday:      "Today",
		domain.PeriodYesterday:  "Yesterday",
		domain.PeriodLast7Days:  "Last 7 days",
		domain.PeriodLast15Days: "Last 15 days",
		domain.PeriodLast30Days: "Last 30 days",
		domain.PeriodThisWeek:   "This week",
		domain.PeriodLastWeek:   "Last week",
		domain.PeriodThisMonth:  "This month",
		domain.PeriodLastMonth:  "Last month",
		domain.PeriodLast90Days: "Last 90 days",
		domain.PeriodLastYear:   "Last year",
	},
	groupingLabels: map[domain.DataGrouping]string{
		domain.GroupingDaily:   "Daily",
		domain.GroupingWeekly:  "Weekly",
		domain.GroupingMonthly: "Monthly",
	},
}

// Index order must match the supported tags.
var (
	supportedLocales = []*localeSpec{ptBR, enUS}
	localeMatcher    = language.NewMatcher([]language.Tag{
		language.BrazilianPortuguese,
		language.AmericanEnglish,
	})
)

// ResolveLocale returns the supported locale closest to the BCP 47 tag s,
// or DefaultLocale when nothing matches.
func ResolveLocale(s string) string {
	return lookupLocale(s).name
}

func lookupLocale(s string) *localeSpec {
	if s == "" {
		return ptBR
	}
	tag, err := language.Parse(s)
	if err != nil {
		return ptBR
	}
	_, idx, conf := localeMatcher.Match(tag)
	if conf == language.No || idx < 0 || idx >= len(supportedLocales) {
		return ptBR
	}
	return supportedLocales[idx]
}

func (l *localeSpec) periodLabel(p domain.TimePeriod) string {
	if label, ok := l.periodLabels[p]; ok {
		return label
	}
	return PeriodLabel(p)
}

func (l *localeSpec) groupingLabel(g domain.DataGrouping) string {
	if label, ok := l.groupingLabels[g]; ok {
		return label
	}
	return l.groupingLabels[domain.GroupingMonthly]
}
