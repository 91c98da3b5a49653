package eca

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/

import (
	"encoding/json"
	"strconv"

	"github.com/plakich/eca/dom"
	"github.com/plakich/eca/option"
	"github.com/plakich/eca/textwrap"
)

// bootstrap turns the document's marker-class query result into groups.
// An element's leading class (the first class that is not the marker)
// names its group; siblings sharing the same leading class become the
// group's members in document order. Text targets are split into letter
// spans first, and those spans become the members.
func (e *Engine) bootstrap() error {
	res := option.NewResolver(e.doc).WithPrefix(e.optionPrefix)
	candidates, err := e.doc.QuerySelectorAll("." + e.marker)
	if err != nil {
		return err
	}

	grouped := make(map[*dom.Element]bool)
	for _, el := range candidates {
		if grouped[el] {
			continue
		}
		leading := e.leadingClass(el)
		cfg := e.resolveConfig(res, el)
		g := newGroup(e.uniqueID(leading), cfg)

		if _, isText := el.Dataset(e.prefix() + "-text"); isText {
			grouped[el] = true
			e.addTextMembers(g, el)
		} else {
			for _, sib := range el.SiblingElements() {
				if !sib.HasClass(e.marker) || !sib.HasClass(leading) || grouped[sib] {
					continue
				}
				grouped[sib] = true
				e.addMember(g, sib, cfg.Offset)
			}
		}
		if g.Len() == 0 {
			continue
		}
		e.groups = append(e.groups, g)
		e.byID[g.id] = g
		e.attachListeners(g)
		tracer().P("group", g.id).Infof("tracking %d member(s), %s strategy", g.Len(), e.strategy.name())
	}
	return nil
}

// leadingClass returns the class that names an element's group: the first
// class that is not the marker, or the marker itself for bare elements.
func (e *Engine) leadingClass(el *dom.Element) string {
	for _, c := range el.Classes() {
		if c != e.marker {
			return c
		}
	}
	return e.marker
}

// uniqueID disambiguates repeated leading class names by suffixing a
// running integer.
func (e *Engine) uniqueID(base string) string {
	if _, taken := e.byID[base]; !taken {
		return base
	}
	for i := 2; ; i++ {
		id := base + "-" + strconv.Itoa(i)
		if _, taken := e.byID[id]; !taken {
			return id
		}
	}
}

func (e *Engine) resolveConfig(res *option.Resolver, el *dom.Element) GroupConfig {
	return GroupConfig{
		Multiplier:      res.Duration(el, "stagger", 0),
		FromZero:        res.Bool(el, "stagger-from-zero", false),
		Delay:           res.Duration(el, "group-delay", 0),
		PlayOnLoad:      res.Bool(el, "play-on-load", false),
		Reverse:         res.Bool(el, "reverse", false),
		AllOnFirstSight: res.Bool(el, "all-on-first-sight", false),
		Transitions:     res.Bool(el, "transitions", false),
		Remove:          ParseRemoveMode(res.String(el, "remove", "")),
		Listeners:       res.String(el, "listeners", ""),
		Offset:          res.Fraction(el, "offset"),
	}
}

// addMember constructs a member for an element, applying its per-element
// delay override if one is declared. The override is deliberately not
// resolved against the page-global scope: a global value would turn every
// member's delay into the same "unique" one.
func (e *Engine) addMember(g *Group, el *dom.Element, threshold float64) *Member {
	m := newMember(el, g, threshold)
	if raw, ok := el.Dataset(e.prefix() + "-delay"); ok {
		if d, numeric := option.ParseDuration(raw); numeric {
			m.setUniqueDelay(d)
		}
		// non-numeric delays silently count as zero, i.e. no override
	}
	g.appendMember(m)
	if o, ok := e.strategy.(*observerStrategy); ok {
		o.register(m)
	}
	return m
}

// addTextMembers splits a text target into letter spans and tracks each
// span as a member. A per-character delay map (JSON, character index to
// duration) assigns unique delays; malformed JSON skips the map for this
// group and is reported, everything else proceeds.
func (e *Engine) addTextMembers(g *Group, el *dom.Element) {
	letters := textwrap.Wrap(el)

	delays := make(map[int]string)
	if raw, ok := el.Dataset(e.prefix() + "-char-delays"); ok && raw != "" {
		var spec map[string]string
		if err := json.Unmarshal([]byte(raw), &spec); err != nil {
			tracer().P("group", g.id).Errorf("malformed char-delay spec, skipping delays: %v", err)
		} else {
			for k, v := range spec {
				if idx, err := strconv.Atoi(k); err == nil {
					delays[idx] = v
				}
			}
		}
	}

	for i, span := range letters {
		m := newMember(span, g, g.cfg.Offset)
		if raw, ok := delays[i]; ok {
			if d, numeric := option.ParseDuration(raw); numeric {
				m.setUniqueDelay(d)
			}
		}
		g.appendMember(m)
		if o, ok := e.strategy.(*observerStrategy); ok {
			o.register(m)
		}
	}
}
