package eca

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/

import (
	"github.com/plakich/eca/dom"
)

// pollStrategy derives visibility from bounding-box reads on every
// scroll/resize trigger. It is the fallback wherever intersection
// observation is unavailable.
type pollStrategy struct {
	metrics dom.Metrics
}

func newPollStrategy(metrics dom.Metrics) *pollStrategy {
	return &pollStrategy{metrics: metrics}
}

func (p *pollStrategy) name() string {
	return "polling"
}

func (p *pollStrategy) read(groups []*Group, trigger Trigger) {
	for _, g := range groups {
		for _, m := range g.members {
			readMemberByBox(p.metrics, m)
		}
	}
}

func (p *pollStrategy) refresh(g *Group) {
	refreshGroupByBox(p.metrics, g)
}
