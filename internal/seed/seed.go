// Package seed generates a synthetic talent corpus for demos and
// service tests: persona archetypes with explicit skill claims, a
// completed-task history, and open tasks to staff.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/synapsehq/synapse/internal/domain/model"
)

// Default generation constants.
const (
	defaultEngineerCount = 40
	defaultRandomSeed    = 42
	maxHistoryAgeDays    = 365
)

// Skill identifiers used by the synthetic corpus.
const (
	SkillPython     model.SkillID = "python"
	SkillGo         model.SkillID = "go"
	SkillReact      model.SkillID = "react"
	SkillTypeScript model.SkillID = "typescript"
	SkillPostgres   model.SkillID = "postgresql"
	SkillDocker     model.SkillID = "docker"
	SkillKubernetes model.SkillID = "kubernetes"
	SkillTerraform  model.SkillID = "terraform"
	SkillAWS        model.SkillID = "aws"
	SkillCICD       model.SkillID = "ci-cd"
	SkillRedis      model.SkillID = "redis"
	SkillTailwind   model.SkillID = "tailwind"
)

// archetype describes one persona the generator stamps engineers from.
type archetype struct {
	name        string
	skills      map[model.SkillID]float64
	minHistory  int
	maxHistory  int
	successBase float64
}

// The archetype mix keeps both ends of the experience spectrum in the
// corpus: seasoned generalists with deep history and newcomers with
// strong claims but little evidence.
var archetypes = []archetype{
	{
		name: "Veteran Full-Stack Generalist",
		skills: map[model.SkillID]float64{
			SkillPython: 1.0, SkillReact: 0.7, SkillPostgres: 1.0, SkillDocker: 0.7,
		},
		minHistory: 18, maxHistory: 30, successBase: 0.85,
	},
	{
		name: "New Frontend Specialist",
		skills: map[model.SkillID]float64{
			SkillReact: 1.0, SkillTypeScript: 1.0, SkillTailwind: 1.0,
		},
		minHistory: 0, maxHistory: 2, successBase: 0.75,
	},
	{
		name: "Pure Backend Specialist",
		skills: map[model.SkillID]float64{
			SkillGo: 1.0, SkillPostgres: 1.0, SkillDocker: 1.0, SkillRedis: 0.7,
		},
		minHistory: 10, maxHistory: 20, successBase: 0.8,
	},
	{
		name: "T-Shaped DevOps Engineer",
		skills: map[model.SkillID]float64{
			SkillAWS: 1.0, SkillKubernetes: 1.0, SkillTerraform: 1.0,
			SkillPython: 0.7, SkillCICD: 1.0,
		},
		minHistory: 8, maxHistory: 16, successBase: 0.8,
	},
}

// taskTemplate describes one kind of work in the synthetic backlog.
type taskTemplate struct {
	slug   string
	title  string
	skills map[model.SkillID]float64
}

var taskTemplates = []taskTemplate{
	{slug: "fullstack-feature", title: "Full-Stack Feature", skills: map[model.SkillID]float64{SkillPython: 0.5, SkillReact: 0.4, SkillPostgres: 0.4}},
	{slug: "ui-component", title: "UI Component Build", skills: map[model.SkillID]float64{SkillReact: 0.5, SkillTypeScript: 0.5, SkillTailwind: 0.3}},
	{slug: "api-endpoint", title: "API Endpoint Creation", skills: map[model.SkillID]float64{SkillGo: 0.5, SkillPostgres: 0.4, SkillDocker: 0.3}},
	{slug: "infra-migration", title: "Infrastructure Migration", skills: map[model.SkillID]float64{SkillKubernetes: 0.5, SkillTerraform: 0.5, SkillAWS: 0.4}},
	{slug: "cicd-scripting", title: "CI/CD Scripting", skills: map[model.SkillID]float64{SkillCICD: 0.5, SkillPython: 0.3}},
}

// Corpus is a generated talent graph ready to preload into a store.
type Corpus struct {
	Skills    []model.Skill
	Engineers []model.Engineer
	Tasks     []model.Task
	Outcomes  []model.TaskOutcome
}

// Generator produces deterministic synthetic corpora.
type Generator struct {
	engineerCount int
	seed          int64
	now           time.Time
}

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithEngineerCount sets how many engineers to generate.
func WithEngineerCount(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.engineerCount = n
		}
	}
}

// WithSeed sets the random seed; identical seeds generate identical
// corpora.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// WithReferenceTime pins the timestamp history is generated relative to.
func WithReferenceTime(t time.Time) Option {
	return func(g *Generator) {
		if !t.IsZero() {
			g.now = t
		}
	}
}

// NewGenerator creates a generator with configuration options.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		engineerCount: defaultEngineerCount,
		seed:          defaultRandomSeed,
		now:           time.Now(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate builds the corpus: engineers stamped from the archetype mix,
// one completed historical task per outcome, and one open task per
// template.
func (g *Generator) Generate() Corpus {
	rng := rand.New(rand.NewSource(g.seed)) //nolint:gosec // deterministic corpora

	corpus := Corpus{Skills: skillCatalog()}

	for i := 0; i < g.engineerCount; i++ {
		arch := archetypes[i%len(archetypes)]
		engID := fmt.Sprintf("eng-%03d", i+1)

		explicit := make(map[model.SkillID]float64, len(arch.skills))
		for skill, level := range arch.skills {
			explicit[skill] = level
		}

		history := arch.minHistory
		if spread := arch.maxHistory - arch.minHistory; spread > 0 {
			history += rng.Intn(spread + 1)
		}

		for t := 0; t < history; t++ {
			template := taskTemplates[rng.Intn(len(taskTemplates))]
			taskID := fmt.Sprintf("hist-%s-%03d", engID, t+1)
			corpus.Tasks = append(corpus.Tasks, model.Task{
				ID:           taskID,
				Title:        template.title,
				Requirements: cloneRequirements(template.skills),
			})
			corpus.Outcomes = append(corpus.Outcomes, model.TaskOutcome{
				EngineerID:  engID,
				TaskID:      taskID,
				Success:     g.successFor(rng, arch, template),
				CompletedAt: g.now.AddDate(0, 0, -rng.Intn(maxHistoryAgeDays)),
			})
		}

		corpus.Engineers = append(corpus.Engineers, model.Engineer{
			ID:         engID,
			Name:       fmt.Sprintf("%s %d", arch.name, i/len(archetypes)+1),
			Available:  rng.Float64() > 0.2,
			Explicit:   explicit,
			Experience: float64(history),
		})
	}

	for _, template := range taskTemplates {
		corpus.Tasks = append(corpus.Tasks, model.Task{
			ID:           "task-" + template.slug,
			Title:        template.title,
			Requirements: cloneRequirements(template.skills),
		})
	}

	return corpus
}

// successFor draws a success metric around the archetype baseline,
// nudged by how well the archetype's skills fit the template.
func (g *Generator) successFor(rng *rand.Rand, arch archetype, template taskTemplate) float64 {
	fit, total := 0.0, 0.0
	for skill := range template.skills {
		total++
		if arch.skills[skill] > 0 {
			fit++
		}
	}
	fitBonus := 0.0
	if total > 0 {
		fitBonus = 0.15 * (fit/total - 0.5)
	}
	jitter := (rng.Float64() - 0.5) * 0.2
	return model.Clamp01(arch.successBase + fitBonus + jitter)
}

func skillCatalog() []model.Skill {
	ids := []model.SkillID{
		SkillPython, SkillGo, SkillReact, SkillTypeScript, SkillPostgres,
		SkillDocker, SkillKubernetes, SkillTerraform, SkillAWS, SkillCICD,
		SkillRedis, SkillTailwind,
	}
	skills := make([]model.Skill, len(ids))
	for i, id := range ids {
		skills[i] = model.Skill{ID: id, Name: string(id)}
	}
	return skills
}

func cloneRequirements(reqs map[model.SkillID]float64) map[model.SkillID]float64 {
	out := make(map[model.SkillID]float64, len(reqs))
	for skill, minLevel := range reqs {
		out[skill] = minLevel
	}
	return out
}
