package data

import (
	"errors"
	"fmt"
	"os"

	"github.com/andrewd440/Atlas-ECS/internal/core/ecs"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownPrefab    = errors.New("unknown prefab")
	ErrUnknownComponent = errors.New("unknown component")
)

// Prefab is a named entity template: components to attach and groups to join.
type Prefab struct {
	Name       string
	Groups     []string
	components []prefabComponent
}

type prefabComponent struct {
	name string
	node *yaml.Node
}

// ComponentNames returns the prefab's component names in file order.
func (p *Prefab) ComponentNames() []string {
	names := make([]string, len(p.components))
	for i, c := range p.components {
		names[i] = c.name
	}
	return names
}

// SpawnEntry asks for Count instances of Prefab at boot.
type SpawnEntry struct {
	Prefab string `yaml:"prefab"`
	Count  int    `yaml:"count"`
}

type prefabEntry struct {
	Name       string    `yaml:"name"`
	Groups     []string  `yaml:"groups"`
	Components yaml.Node `yaml:"components"`
}

type prefabListFile struct {
	Prefabs []prefabEntry `yaml:"prefabs"`
	Spawns  []SpawnEntry  `yaml:"spawns"`
}

// PrefabTable holds every prefab indexed by name plus the boot spawn list.
type PrefabTable struct {
	catalog *Catalog
	prefabs map[string]*Prefab
	order   []string
	spawns  []SpawnEntry
}

// LoadPrefabTable loads prefabs and spawns from a YAML file.
func LoadPrefabTable(path string, catalog *Catalog) (*PrefabTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prefab list: %w", err)
	}
	return ParsePrefabTable(raw, catalog)
}

// ParsePrefabTable decodes prefab YAML. Every component is trial-decoded so
// bad fields fail here rather than at spawn time.
func ParsePrefabTable(raw []byte, catalog *Catalog) (*PrefabTable, error) {
	var f prefabListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse prefab list: %w", err)
	}

	t := &PrefabTable{
		catalog: catalog,
		prefabs: make(map[string]*Prefab, len(f.Prefabs)),
	}
	for i := range f.Prefabs {
		entry := &f.Prefabs[i]
		if entry.Name == "" {
			return nil, fmt.Errorf("prefab #%d: missing name", i)
		}
		if _, dup := t.prefabs[entry.Name]; dup {
			return nil, fmt.Errorf("prefab %q: defined twice", entry.Name)
		}
		p, err := t.buildPrefab(entry)
		if err != nil {
			return nil, err
		}
		t.prefabs[p.Name] = p
		t.order = append(t.order, p.Name)
	}

	for _, s := range f.Spawns {
		if _, ok := t.prefabs[s.Prefab]; !ok {
			return nil, fmt.Errorf("spawn %q: %w", s.Prefab, ErrUnknownPrefab)
		}
		if s.Count < 0 {
			return nil, fmt.Errorf("spawn %q: negative count %d", s.Prefab, s.Count)
		}
	}
	t.spawns = f.Spawns
	return t, nil
}

func (t *PrefabTable) buildPrefab(entry *prefabEntry) (*Prefab, error) {
	p := &Prefab{Name: entry.Name, Groups: entry.Groups}
	node := &entry.Components
	if node.Kind == 0 {
		return p, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("prefab %q: components must be a mapping (line %d)", entry.Name, node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		value := node.Content[i+1]
		probe, err := t.catalog.New(name)
		if err != nil {
			return nil, fmt.Errorf("prefab %q: %w", entry.Name, err)
		}
		if err := value.Decode(probe); err != nil {
			return nil, fmt.Errorf("prefab %q component %q: %w", entry.Name, name, err)
		}
		p.components = append(p.components, prefabComponent{name: name, node: value})
	}
	return p, nil
}

// Get returns the prefab with the given name.
func (t *PrefabTable) Get(name string) (*Prefab, bool) {
	p, ok := t.prefabs[name]
	return p, ok
}

// Count returns the number of prefabs.
func (t *PrefabTable) Count() int { return len(t.prefabs) }

// Names returns prefab names in file order.
func (t *PrefabTable) Names() []string { return append([]string(nil), t.order...) }

// Spawns returns the boot spawn list.
func (t *PrefabTable) Spawns() []SpawnEntry { return append([]SpawnEntry(nil), t.spawns...) }

// Spawn creates one entity from a prefab. Each call decodes fresh component
// values, so instances never share state. On failure the half-built entity
// is deactivated for the next sweep.
func (t *PrefabTable) Spawn(w *ecs.World, name string) (*ecs.Entity, error) {
	p, ok := t.prefabs[name]
	if !ok {
		return nil, fmt.Errorf("spawn %q: %w", name, ErrUnknownPrefab)
	}
	e := w.CreateEntity()
	for _, pc := range p.components {
		c, err := t.catalog.New(pc.name)
		if err == nil {
			err = pc.node.Decode(c)
		}
		if err == nil {
			err = e.AddComponent(c)
		}
		if err != nil {
			e.SetActive(false)
			return nil, fmt.Errorf("spawn %q component %q: %w", name, pc.name, err)
		}
	}
	for _, g := range p.Groups {
		w.Groups().AddToGroup(g, e.ID())
	}
	return e, nil
}

// SpawnAll runs the spawn list and returns how many entities it created.
func (t *PrefabTable) SpawnAll(w *ecs.World) (int, error) {
	n := 0
	for _, s := range t.spawns {
		for i := 0; i < s.Count; i++ {
			if _, err := t.Spawn(w, s.Prefab); err != nil {
				return n, err
			}
			n++
		}
	}
	return n, nil
}
