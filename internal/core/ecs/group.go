package ecs

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// GroupManager is a many-to-many tag index between group names and entity
// ids. Both directions are kept in insertion order and always agree.
// Names are compared after NFC normalization.
type GroupManager struct {
	byName   map[string][]EntityID
	byEntity [][]string
}

func NewGroupManager() *GroupManager {
	return &GroupManager{
		byName: make(map[string][]EntityID),
	}
}

// AddToGroup tags id with name. Adding an existing membership is a no-op.
func (g *GroupManager) AddToGroup(name string, id EntityID) {
	name = norm.NFC.String(name)
	if slices.Contains(g.byName[name], id) {
		return
	}
	g.byName[name] = append(g.byName[name], id)

	if int(id) >= len(g.byEntity) {
		grown := make([][]string, int(id)*2+1)
		copy(grown, g.byEntity)
		g.byEntity = grown
	}
	g.byEntity[id] = append(g.byEntity[id], name)
}

// RemoveFromGroup drops id from name and reports whether it was a member.
func (g *GroupManager) RemoveFromGroup(name string, id EntityID) bool {
	name = norm.NFC.String(name)
	if !g.dropID(name, id) {
		return false
	}
	if int(id) < len(g.byEntity) {
		if i := slices.Index(g.byEntity[id], name); i >= 0 {
			g.byEntity[id] = slices.Delete(g.byEntity[id], i, i+1)
		}
	}
	return true
}

// RemoveFromAllGroups drops every membership id holds.
func (g *GroupManager) RemoveFromAllGroups(id EntityID) {
	if int(id) >= len(g.byEntity) {
		return
	}
	for _, name := range g.byEntity[id] {
		g.dropID(name, id)
	}
	g.byEntity[id] = nil
}

func (g *GroupManager) dropID(name string, id EntityID) bool {
	ids := g.byName[name]
	i := slices.Index(ids, id)
	if i < 0 {
		return false
	}
	ids = slices.Delete(ids, i, i+1)
	if len(ids) == 0 {
		delete(g.byName, name)
	} else {
		g.byName[name] = ids
	}
	return true
}

// Group returns the ids tagged with name in insertion order.
func (g *GroupManager) Group(name string) []EntityID {
	return slices.Clone(g.byName[norm.NFC.String(name)])
}

// EntityGroups returns the names id is tagged with in insertion order.
func (g *GroupManager) EntityGroups(id EntityID) []string {
	if int(id) >= len(g.byEntity) {
		return nil
	}
	return slices.Clone(g.byEntity[id])
}

// InGroup reports whether id is tagged with name.
func (g *GroupManager) InGroup(name string, id EntityID) bool {
	return slices.Contains(g.byName[norm.NFC.String(name)], id)
}

// Names returns every non-empty group name, sorted.
func (g *GroupManager) Names() []string {
	names := make([]string, 0, len(g.byName))
	for name := range g.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (g *GroupManager) String() string {
	var sb strings.Builder
	for _, name := range g.Names() {
		fmt.Fprintf(&sb, "%s: ", name)
		for i, id := range g.byName[name] {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%d", id)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
