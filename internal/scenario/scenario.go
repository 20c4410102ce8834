package scenario

import (
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/annel0/rts-spatial/internal/lockstep"
	"github.com/annel0/rts-spatial/internal/vec"
	"github.com/annel0/rts-spatial/internal/world"
)

// Виды запросов сценария
const (
	KindLine         = "line"
	KindBlockingLine = "blocking_line"
	KindCircle       = "circle"
	KindCells        = "cells"
	KindLineOfSight  = "los"
)

var (
	// ErrUnknownKind - неизвестный вид запроса
	ErrUnknownKind = errors.New("неизвестный вид запроса")
	// ErrBadPosition - позиция задана не двумя или тремя числами
	ErrBadPosition = errors.New("позиция должна содержать 2 или 3 координаты")
)

// actorNamespace - пространство имён для детерминированных UUID актёров по имени
var actorNamespace = uuid.MustParse("8f6d1c2e-4b7a-5e39-9c1d-2a6b3e4f5a60")

// ActorSpec описывает актёра сценария
type ActorSpec struct {
	ID     string  `yaml:"id"`
	Pos    []int32 `yaml:"pos"`
	Radius int32   `yaml:"radius"`
	Blocks bool    `yaml:"blocks"`
}

// QuerySpec описывает запрос сценария
type QuerySpec struct {
	Name   string  `yaml:"name"`
	Kind   string  `yaml:"kind"`
	From   []int32 `yaml:"from"`
	To     []int32 `yaml:"to"`
	Width  int32   `yaml:"width"`
	Radius int32   `yaml:"radius"`
}

// Scenario - набор актёров и запросов к ним
type Scenario struct {
	Actors  []ActorSpec `yaml:"actors"`
	Queries []QuerySpec `yaml:"queries"`

	names map[uuid.UUID]string
}

// Result - результат одного запроса
type Result struct {
	Query   QuerySpec
	Actors  []string   // имена задетых актёров в порядке выдачи
	Cells   []vec.CPos // для cells
	Blocked bool       // для los
}

// Load читает сценарий из YAML-файла
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения сценария %s: %w", path, err)
	}
	return Parse(data)
}

// Parse разбирает YAML-описание сценария
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}

	for i, q := range s.Queries {
		switch q.Kind {
		case KindLine, KindBlockingLine, KindCircle, KindCells, KindLineOfSight:
		default:
			return nil, fmt.Errorf("запрос %d (%s): %w: %q", i, q.Name, ErrUnknownKind, q.Kind)
		}
	}
	return &s, nil
}

// ActorID возвращает UUID актёра: сам id, если это UUID, иначе UUID v5 от имени
func ActorID(name string) uuid.UUID {
	if id, err := uuid.Parse(name); err == nil {
		return id
	}
	return uuid.NewSHA1(actorNamespace, []byte(name))
}

// Populate добавляет актёров сценария в индекс
func (s *Scenario) Populate(m *world.ActorMap) error {
	s.names = make(map[uuid.UUID]string, len(s.Actors))

	for i, spec := range s.Actors {
		pos, err := toPos(spec.Pos)
		if err != nil {
			return fmt.Errorf("актёр %d (%s): %w", i, spec.ID, err)
		}

		name := spec.ID
		if name == "" {
			name = fmt.Sprintf("actor-%d", i)
		}

		id := ActorID(name)
		if err := m.Add(world.NewUnitWithID(id, pos, vec.WDist(spec.Radius), spec.Blocks)); err != nil {
			return fmt.Errorf("актёр %d (%s): %w", i, name, err)
		}
		s.names[id] = name
	}
	return nil
}

// Run выполняет запросы сценария и возвращает результаты вместе с контрольной суммой
func (s *Scenario) Run(w *world.World) ([]Result, uint64, error) {
	hasher := lockstep.NewHasher()
	results := make([]Result, 0, len(s.Queries))

	for i, q := range s.Queries {
		from, err := toPos(q.From)
		if err != nil {
			return nil, 0, fmt.Errorf("запрос %d (%s), from: %w", i, q.Name, err)
		}

		res := Result{Query: q}

		var actors []world.Actor
		actorQuery := true
		switch q.Kind {
		case KindCircle:
			actors = w.FindActorsOnCircle(from, vec.WDist(q.Radius))
		default:
			to, err := toPos(q.To)
			if err != nil {
				return nil, 0, fmt.Errorf("запрос %d (%s), to: %w", i, q.Name, err)
			}

			switch q.Kind {
			case KindLine:
				actors = w.FindActorsOnLine(from, to, vec.WDist(q.Width), false)
			case KindBlockingLine:
				actors = blockersOnly(w.FindBlockingActorsOnLine(from, to, vec.WDist(q.Width)))
			case KindCells:
				actorQuery = false
				res.Cells = w.CellsOnLine(from, to)
				hasher.WriteCells(res.Cells)
			case KindLineOfSight:
				actorQuery = false
				res.Blocked = w.BlocksLineOfSight(from, to)
				hasher.WriteBool(res.Blocked)
			default:
				return nil, 0, fmt.Errorf("запрос %d (%s): %w: %q", i, q.Name, ErrUnknownKind, q.Kind)
			}
		}

		if actorQuery {
			ids := world.ActorIDs(actors)
			hasher.WriteActorIDs(ids)
			res.Actors = s.actorNames(ids)
		}

		results = append(results, res)
	}

	return results, hasher.Sum64(), nil
}

func (s *Scenario) actorNames(ids []uuid.UUID) []string {
	names := make([]string, len(ids))
	for i, id := range ids {
		if name, ok := s.names[id]; ok {
			names[i] = name
		} else {
			names[i] = id.String()
		}
	}
	return names
}

// blockersOnly оставляет только актёров, перекрывающих снаряды
func blockersOnly(actors []world.Actor) []world.Actor {
	out := actors[:0:0]
	for _, a := range actors {
		if world.IsBlocker(a) {
			out = append(out, a)
		}
	}
	return out
}

func toPos(coords []int32) (vec.WPos, error) {
	switch len(coords) {
	case 2:
		return vec.WPos{X: coords[0], Y: coords[1]}, nil
	case 3:
		return vec.WPos{X: coords[0], Y: coords[1], Z: coords[2]}, nil
	}
	return vec.WPos{}, fmt.Errorf("%w: %v", ErrBadPosition, coords)
}
