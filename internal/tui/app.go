// Package tui provides the interactive bubbletea front end of finquest.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/finquest/internal/catalog"
	"github.com/theirongolddev/finquest/internal/cli"
	"github.com/theirongolddev/finquest/internal/model"
	"github.com/theirongolddev/finquest/internal/notify"
	"github.com/theirongolddev/finquest/internal/progress"
	"github.com/theirongolddev/finquest/internal/projection"
	"github.com/theirongolddev/finquest/internal/quest"
	"github.com/theirongolddev/finquest/internal/tui/components"
	"github.com/theirongolddev/finquest/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

const (
	tabPlan = iota
	tabSnapshot
	tabQuests
	tabHistory
	tabWhatIf
)

const (
	minWidth    = 60
	toastExpiry = 4 * time.Second
)

// eventMsg carries one bus event into the update loop.
type eventMsg notify.Event

// toastExpiredMsg clears the toast of event id if it is still shown.
type toastExpiredMsg struct{ id int64 }

// formValues holds the fields a huh form writes into. It lives behind a
// pointer so the bindings survive the App being copied by value.
type formValues struct {
	kind   string
	choice string
	text   string
}

// App is the root bubbletea model.
type App struct {
	engine *progress.Engine
	events <-chan notify.Event
	symbol string

	width     int
	height    int
	activeTab int

	form       *huh.Form
	formFor    string // question id, empty for the plan picker
	vals       *formValues
	questIdx   int
	toast      string
	toastID    int64
	lastErr    string
	leveledUp  bool
	finishedAt string // plan id whose first snapshot was rewarded

	whatIf      projection.Adjustments
	whatIfField int
}

// NewApp builds the model over engine. events may be nil when no bus is
// wired; symbol is the currency symbol for amounts.
func NewApp(engine *progress.Engine, events <-chan notify.Event, symbol string) App {
	a := App{
		engine: engine,
		events: events,
		symbol: symbol,
		width:  80,
		height: 24,
		vals:   &formValues{},
	}
	a.prepareForm()
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	var cmds []tea.Cmd
	if a.form != nil {
		cmds = append(cmds, a.form.Init())
	}
	if a.events != nil {
		cmds = append(cmds, waitForEvent(a.events))
	}
	return tea.Batch(cmds...)
}

func waitForEvent(events <-chan notify.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return eventMsg(ev)
	}
}

func expireToast(id int64) tea.Cmd {
	return tea.Tick(toastExpiry, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = max(msg.Width, minWidth)
		a.height = msg.Height
		if a.form != nil {
			a.form = a.form.WithWidth(a.contentWidth() - 4)
		}
		return a, nil

	case eventMsg:
		if msg.XP > 0 || msg.Kind != notify.XPAwarded {
			a.toast = msg.Message
			a.toastID = msg.ID
		}
		return a, tea.Batch(waitForEvent(a.events), expireToast(msg.ID))

	case toastExpiredMsg:
		if msg.id == a.toastID {
			a.toast = ""
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.activeTab == tabPlan && a.form != nil {
			if msg.String() == "esc" {
				return a.setTab(tabSnapshot), nil
			}
			return a.updateForm(msg)
		}
		return a.handleKey(msg)
	}

	if a.activeTab == tabPlan && a.form != nil {
		return a.updateForm(msg)
	}
	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q":
		return a, tea.Quit
	case "tab":
		return a.setTab((a.activeTab + 1) % len(components.Tabs)), nil
	case "shift+tab":
		return a.setTab((a.activeTab + len(components.Tabs) - 1) % len(components.Tabs)), nil
	}
	if len(msg.Runes) == 1 {
		if idx := components.TabIdxByKey(msg.Runes[0]); idx >= 0 {
			return a.setTab(idx), nil
		}
	}

	switch a.activeTab {
	case tabPlan:
		if key == "r" {
			a.engine.RestartFlow()
			a.prepareForm()
			return a, a.initForm()
		}
		if key == "n" {
			a.startPicker()
			return a, a.initForm()
		}
	case tabQuests:
		return a.handleQuestKey(key), nil
	case tabWhatIf:
		return a.handleWhatIfKey(key), nil
	}
	return a, nil
}

// setTab switches to idx. Entering a viewing tab records the visit; the
// engine rewards each view once a day.
func (a App) setTab(idx int) App {
	if idx == a.activeTab {
		return a
	}
	a.activeTab = idx
	switch idx {
	case tabSnapshot:
		a.engine.RecordSnapshotView()
	case tabWhatIf:
		a.whatIf = projection.DefaultAdjustments(a.engine.Snapshot())
		a.whatIfField = 0
		a.engine.RecordWhatIfView()
	}
	return a
}

// whatIfInputs are the adjustable rows of the What-if tab, in the order
// nudge indexes them.
var whatIfInputs = []struct {
	label string
	step  float64
	money bool
}{
	{"Monthly income", 1000, true},
	{"Monthly expenses", 500, true},
	{"Extra saving", 500, true},
	{"Current age", 1, false},
	{"Retirement age", 1, false},
}

func nudge(adj projection.Adjustments, field int, delta float64) projection.Adjustments {
	switch field {
	case 0:
		adj.MonthlyIncome += delta
	case 1:
		adj.MonthlyExpenses += delta
	case 2:
		adj.ExtraSaving += delta
	case 3:
		adj.CurrentAge += int(delta)
	case 4:
		adj.RetirementAge += int(delta)
	}
	return adj.Clamped()
}

func whatIfValue(adj projection.Adjustments, field int) float64 {
	switch field {
	case 0:
		return adj.MonthlyIncome
	case 1:
		return adj.MonthlyExpenses
	case 2:
		return adj.ExtraSaving
	case 3:
		return float64(adj.CurrentAge)
	default:
		return float64(adj.RetirementAge)
	}
}

func (a App) handleWhatIfKey(key string) App {
	step := whatIfInputs[a.whatIfField].step
	switch key {
	case "up", "k":
		a.whatIfField = max(a.whatIfField-1, 0)
	case "down", "j":
		a.whatIfField = min(a.whatIfField+1, len(whatIfInputs)-1)
	case "right", "+", "=":
		a.whatIf = nudge(a.whatIf, a.whatIfField, step)
	case "left", "-":
		a.whatIf = nudge(a.whatIf, a.whatIfField, -step)
	case "r":
		a.whatIf = projection.DefaultAdjustments(a.engine.Snapshot())
	}
	return a
}

func (a App) handleQuestKey(key string) App {
	quests := a.engine.WeeklyQuests()
	if len(quests) == 0 {
		return a
	}
	a.questIdx = min(a.questIdx, len(quests)-1)
	week := quest.WeekKey(a.engine.Now())
	q := quests[a.questIdx]

	switch key {
	case "up", "k":
		a.questIdx = max(a.questIdx-1, 0)
	case "down", "j":
		a.questIdx = min(a.questIdx+1, len(quests)-1)
	case "enter", " ", "d":
		if a.engine.QuestStatus(q.ID, week) != model.QuestDone {
			a.engine.CompleteQuest(q.ID, week)
		}
	case "x":
		if a.engine.QuestStatus(q.ID, week) == model.QuestTodo {
			a.engine.SkipQuest(q.ID, week, q.Deferred())
		}
	}
	return a
}

func (a App) initForm() tea.Cmd {
	if a.form == nil {
		return nil
	}
	return a.form.Init()
}

// prepareForm builds the form for the current state: the plan picker when
// there is no flow, the current question otherwise, and nothing once the
// flow is complete.
func (a *App) prepareForm() {
	a.form = nil
	a.formFor = ""
	if a.engine.FlowKind() == "" {
		a.startPicker()
		return
	}
	q, ok := a.engine.CurrentQuestion()
	if !ok {
		a.finishFlow()
		return
	}
	a.form = a.questionForm(q)
	a.formFor = q.ID
}

func (a *App) startPicker() {
	a.vals.kind = string(model.PlanSaving)
	opts := make([]huh.Option[string], 0, len(model.PlanKinds))
	for _, k := range model.PlanKinds {
		opts = append(opts, huh.NewOption(kindTitle(k), string(k)))
	}
	a.form = a.newForm(huh.NewSelect[string]().
		Title("What would you like to plan?").
		Options(opts...).
		Value(&a.vals.kind))
	a.formFor = ""
}

func (a *App) newForm(field huh.Field) *huh.Form {
	return huh.NewForm(huh.NewGroup(field)).
		WithShowHelp(false).
		WithWidth(a.contentWidth() - 4)
}

func (a *App) questionForm(q model.QuestionSpec) *huh.Form {
	existing, answered := a.engine.Answer(q.ID)

	if q.Kind == model.KindChoice {
		a.vals.choice = ""
		if answered {
			a.vals.choice = existing.Value.String()
		} else if len(q.Options) > 0 {
			a.vals.choice = q.Options[0].Value.String()
		}
		opts := make([]huh.Option[string], len(q.Options))
		for i, o := range q.Options {
			opts[i] = huh.NewOption(o.Label, o.Value.String())
		}
		return a.newForm(huh.NewSelect[string]().
			Title(q.Prompt).
			Options(opts...).
			Value(&a.vals.choice))
	}

	a.vals.text = ""
	if answered {
		a.vals.text = existing.Value.String()
	}
	id := q.ID
	return a.newForm(huh.NewInput().
		Title(q.Prompt).
		Description(a.rangeHint(q)).
		Placeholder(cli.Label(q, model.Number(q.Default), a.symbol)).
		Value(&a.vals.text).
		Validate(func(s string) error {
			if strings.TrimSpace(s) == "" {
				return nil
			}
			return a.engine.CheckAnswer(id, s)
		}))
}

func (a App) rangeHint(q model.QuestionSpec) string {
	lo := a.engine.ResolveBound(q, catalog.Min)
	hi := a.engine.ResolveBound(q, catalog.Max)
	if q.SliderMax > 0 {
		hi = min(hi, q.SliderMax)
	}
	return fmt.Sprintf("%s to %s, enter for %s",
		cli.Label(q, model.Number(lo), a.symbol),
		cli.Label(q, model.Number(hi), a.symbol),
		cli.Label(q, model.Number(q.Default), a.symbol))
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateCompleted:
		a.submitForm()
		a.prepareForm()
		return a, a.initForm()
	case huh.StateAborted:
		a.prepareForm()
		return a, a.initForm()
	}
	return a, cmd
}

func (a *App) submitForm() {
	a.lastErr = ""
	if a.formFor == "" {
		kind := model.PlanKind(a.vals.kind)
		if _, err := a.engine.CreatePlan(kind, "", ""); err != nil {
			a.lastErr = err.Error()
		}
		return
	}

	q, ok := a.engine.CurrentQuestion()
	if !ok || q.ID != a.formFor {
		return
	}
	raw := a.vals.choice
	if q.Kind.Numeric() {
		raw = strings.TrimSpace(a.vals.text)
		if raw == "" {
			raw = model.Number(max(q.Default, a.engine.ResolveBound(q, catalog.Min))).String()
		}
	}
	prev, had := a.engine.Answer(q.ID)
	ans, err := a.engine.SubmitAnswer(q.ID, raw, "")
	if err != nil {
		a.lastErr = err.Error()
		return
	}
	if had && !prev.Value.Equal(ans.Value) {
		awardAdjustment(a.engine)
	}
	a.engine.AdvanceQuestion()
}

// awardAdjustment rewards changing an answer of a plan that already has
// a snapshot.
func awardAdjustment(e *progress.Engine) {
	if !e.Sandbox() && e.Snapshot() != nil {
		e.AwardXP(progress.PlanAdjusted)
	}
}

// finishFlow computes the snapshot once every visible question is
// answered. The first completion of a plan earns the level bonus.
func (a *App) finishFlow() {
	hadSnapshot := a.engine.Snapshot() != nil
	if _, ok := a.engine.CalculateSnapshot(); !ok {
		return
	}
	if a.engine.Sandbox() {
		return
	}
	plan, bound := a.engine.ActivePlan()
	if bound && !hadSnapshot && a.finishedAt != plan.ID {
		a.engine.AwardXP(progress.CompleteLevel)
		a.finishedAt = plan.ID
		a.leveledUp = true
	}
}

func (a App) contentWidth() int {
	return max(a.width, minWidth)
}

// View implements tea.Model.
func (a App) View() string {
	t := theme.Active
	w := a.contentWidth()

	var b strings.Builder
	b.WriteString(a.renderHeader(w))
	b.WriteString("\n")
	b.WriteString(components.RenderTabBar(a.activeTab))
	b.WriteString("\n\n")

	switch a.activeTab {
	case tabPlan:
		b.WriteString(a.renderPlan(w))
	case tabSnapshot:
		b.WriteString(a.renderSnapshot(w))
	case tabQuests:
		b.WriteString(a.renderQuests(w))
	case tabHistory:
		b.WriteString(a.renderHistory(w))
	case tabWhatIf:
		b.WriteString(a.renderWhatIf(w))
	}

	if a.lastErr != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(t.Red).Render("  " + a.lastErr))
	}
	b.WriteString("\n")
	b.WriteString(components.RenderStatusBar(w, a.hints(), a.toast))
	return b.String()
}

func (a App) hints() string {
	switch {
	case a.activeTab == tabPlan && a.form != nil:
		return "[enter]answer  [esc]leave  [ctrl+c]quit"
	case a.activeTab == tabPlan:
		return "[r]estart  [n]ew plan  [tab]next  [q]uit"
	case a.activeTab == tabQuests:
		return "[↑↓]select  [d]one  [x]skip  [q]uit"
	case a.activeTab == tabWhatIf:
		return "[↑↓]select  [←→]adjust  [r]eset  [q]uit"
	default:
		return "[tab]next  [q]uit"
	}
}

func (a App) renderHeader(w int) string {
	t := theme.Active
	xp := a.engine.XP()
	rank := a.engine.Rank()

	left := lipgloss.NewStyle().Foreground(t.Accent).Bold(true).Render(" finquest")
	if a.engine.Sandbox() {
		left += lipgloss.NewStyle().Foreground(t.TextDim).Render("  sandbox " + string(a.engine.FlowKind()))
	} else if p, ok := a.engine.ActivePlan(); ok {
		left += lipgloss.NewStyle().Foreground(t.TextMuted).Render("  " + p.Emoji + " " + p.Name)
	}

	right := fmt.Sprintf("%s %s  %s  🔥 %d ", rank.Emoji, rank.Name, cli.FormatXP(xp), a.engine.StreakMonths())
	pad := max(w-lipgloss.Width(left)-lipgloss.Width(right), 1)
	line := left + strings.Repeat(" ", pad) + lipgloss.NewStyle().Foreground(t.TextPrimary).Render(right)

	floor, next := rank.MinXP, rank.MinXP
	if n, ok := progress.NextRank(xp); ok {
		next = n.MinXP
	}
	return line + "\n " + components.XPBar(xp, floor, next, w-2)
}

func (a App) renderPlan(w int) string {
	t := theme.Active
	active := a.engine.ActiveQuestions()

	if a.form == nil {
		body := lipgloss.NewStyle().Foreground(t.Green).Render("Every question is answered.")
		if a.leveledUp {
			body += "\n" + lipgloss.NewStyle().Foreground(t.Magenta).Bold(true).
				Render(fmt.Sprintf("Level complete! +%d XP", progress.Points(progress.CompleteLevel)))
		}
		return components.Card("Plan complete", body, w, true) + "\n" + a.renderSnapshot(w)
	}

	var b strings.Builder
	if a.formFor != "" {
		answered := 0
		for _, q := range active {
			if _, ok := a.engine.Answer(q.ID); ok {
				answered++
			}
		}
		b.WriteString(" ")
		b.WriteString(components.FlowBar(answered, len(active), w-2))
		b.WriteString("\n")
		if q, ok := a.engine.CurrentQuestion(); ok && q.Group != "" {
			b.WriteString(lipgloss.NewStyle().Foreground(t.TextDim).Render(" " + strings.ToUpper(q.Group)))
			b.WriteString("\n")
		}
	}
	title := "Question"
	if a.formFor == "" {
		title = "New plan"
	}
	b.WriteString(components.Card(title, a.form.View(), w, true))
	return b.String()
}

func (a App) renderSnapshot(w int) string {
	snap := a.engine.Snapshot()
	if snap == nil {
		return components.Card("Snapshot", "Answer the plan questions to see your projection.", w, false)
	}
	money := func(n int64) string { return cli.FormatMoney(n, a.symbol) }

	row := components.StatRow([]components.Stat{
		{Label: "Monthly income", Value: money(snap.MonthlyIncome)},
		{Label: "Monthly savings", Value: money(snap.MonthlySavings), Note: cli.FormatPercent(snap.SavingsRate) + " of income"},
		{Label: "Safe spending", Value: money(snap.SafeSpendingRange[0]) + " to " + money(snap.SafeSpendingRange[1])},
	}, w)

	kv := cli.RenderKeyValues([][2]string{
		{"Annual savings", money(snap.AnnualSavings)},
		{"Existing savings", money(snap.ExistingSavings)},
		{"Years to retire", cli.FormatYears(snap.YearsToRetire)},
		{"Fund at retirement", money(snap.RetirementFund)},
		{"In today's money", money(snap.InflationAdjusted)},
		{"Needed to retire", money(snap.RetirementNeeded)},
		{"Years in retirement", cli.FormatYears(snap.YearsInRetirement)},
		{"Risk tolerance", snap.RiskTolerance},
	})
	return row + "\n" + components.Card("Projection", strings.TrimRight(kv, "\n"), w, false)
}

func (a App) renderQuests(w int) string {
	t := theme.Active
	now := a.engine.Now()
	week := quest.WeekKey(now)
	quests := a.engine.WeeklyQuests()

	var b strings.Builder
	for i, q := range quests {
		status := a.engine.QuestStatus(q.ID, week)
		mark := "[ ]"
		style := lipgloss.NewStyle().Foreground(t.TextPrimary)
		switch status {
		case model.QuestDone:
			mark, style = "[✓]", style.Foreground(t.Green)
		case model.QuestSkipped:
			mark, style = "[–]", style.Foreground(t.TextDim)
		}
		cursor := "  "
		if i == min(a.questIdx, len(quests)-1) {
			cursor = lipgloss.NewStyle().Foreground(t.Accent).Render("▸ ")
		}
		fmt.Fprintf(&b, "%s%s %s %s  %s\n", cursor, style.Render(mark), q.Icon,
			style.Render(q.Title), lipgloss.NewStyle().Foreground(t.TextMuted).Render(cli.FormatMoney(q.Amount, a.symbol)))
	}

	month := quest.MonthKey(now)
	targets := a.engine.MonthTargets(month)
	fmt.Fprintf(&b, "\n%s", lipgloss.NewStyle().Foreground(t.TextMuted).Render(
		fmt.Sprintf("%s targets: save %s, invest %s, spend at most %s",
			month,
			cli.FormatAmount(targets.Savings, a.symbol),
			cli.FormatAmount(targets.Investment, a.symbol),
			cli.FormatAmount(targets.SpendingLimit, a.symbol))))
	if targets.Rollover > 0 {
		fmt.Fprintf(&b, "\n%s", lipgloss.NewStyle().Foreground(t.Orange).Render(
			"includes "+cli.FormatAmount(targets.Rollover, a.symbol)+" carried over"))
	}
	return components.Card("Quests for "+week, b.String(), w, true)
}

func (a App) renderHistory(w int) string {
	t := theme.Active
	logs := a.engine.MonthlyLogs()
	if len(logs) == 0 {
		return components.Card("History", "No months logged yet. Use `finquest log add`.", w, false)
	}

	inner := components.InnerWidth(w)
	var b strings.Builder
	savings := make([]float64, len(logs))
	for i, l := range logs {
		// oldest first for the sparkline
		savings[len(logs)-1-i] = l.ActualSavings
	}
	b.WriteString(lipgloss.NewStyle().Foreground(t.TextMuted).Render("savings "))
	b.WriteString(components.Sparkline(savings, t.Accent))
	b.WriteString("\n\n")

	for _, l := range logs {
		status := lipgloss.NewStyle().Foreground(t.StatusColor(l.Status)).Render(fmt.Sprintf("%-8s", l.Status))
		b.WriteString(components.TargetBar(l.MonthKey, l.ActualSavings, l.TargetSavings, 8, inner-10))
		b.WriteString(" ")
		b.WriteString(status)
		b.WriteString("\n")
	}
	return components.Card("History", strings.TrimRight(b.String(), "\n"), w, false)
}

func (a App) renderWhatIf(w int) string {
	t := theme.Active
	money := func(n int64) string { return cli.FormatMoney(n, a.symbol) }

	var b strings.Builder
	for i, in := range whatIfInputs {
		v := whatIfValue(a.whatIf, i)
		value := fmt.Sprintf("%.0f", v)
		if in.money {
			value = money(int64(v))
		}
		cursor := "  "
		style := lipgloss.NewStyle().Foreground(t.TextMuted)
		if i == a.whatIfField {
			cursor = lipgloss.NewStyle().Foreground(t.Accent).Render("▸ ")
			style = style.Foreground(t.TextPrimary)
		}
		fmt.Fprintf(&b, "%s%s %s\n", cursor, style.Render(fmt.Sprintf("%-18s", in.label)),
			lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true).Render(value))
	}

	res := projection.WhatIf(a.engine.Snapshot(), a.whatIf)
	vsPlan := components.Stat{Label: "Vs plan", Value: "no snapshot", Note: "finish a plan to compare"}
	if res.BaselineFund > 0 {
		vsPlan = components.Stat{Label: "Vs plan", Value: diffLabel(res.DiffMonths), Note: "against " + money(res.BaselineFund)}
	}
	row := components.StatRow([]components.Stat{
		{Label: "Projected fund", Value: money(res.RetirementFund), Note: money(res.InflationAdjusted) + " today"},
		vsPlan,
		{Label: "Savings rate", Value: cli.FormatPercent(res.SavingsRate), Note: money(res.MonthlySavings) + " a month"},
		{Label: "Retire monthly", Value: money(res.SafeMonthly)},
	}, w)

	note := lipgloss.NewStyle().Foreground(t.TextDim).Render("Nothing here is saved to your plan.")
	return components.Card("What if", strings.TrimRight(b.String(), "\n")+"\n\n"+note, w, true) + "\n" + row
}

// diffLabel renders a what-if month difference.
func diffLabel(months int64) string {
	if months >= 0 {
		return fmt.Sprintf("%d months sooner", months)
	}
	return fmt.Sprintf("%d months later", -months)
}

func kindTitle(k model.PlanKind) string {
	switch k {
	case model.PlanSaving:
		return "💰 Build my savings"
	case model.PlanGoal:
		return "🎯 Reach a goal"
	case model.PlanRetirement:
		return "🏖️ Retire comfortably"
	}
	return string(k)
}
