package interact

import (
	"log/slog"

	"desk-room/scene"
)

// Picker turns clicks on the monitor panel into image changes. Only the
// panel is tested, so clicks on anything else are ignored.
type Picker struct {
	Target *scene.Node
	Cycle  *TextureCycle

	raycaster Raycaster
}

func NewPicker(target *scene.Node, cycle *TextureCycle) *Picker {
	return &Picker{Target: target, Cycle: cycle}
}

// Click casts a ray through window position (x, y) and, if it hits the
// target, advances the cycle and shows the new image on the front face.
func (p *Picker) Click(x, y float64, width, height int, cam *scene.Camera) bool {
	if p.Target == nil || p.Cycle == nil || p.Cycle.Len() == 0 {
		return false
	}
	p.raycaster.SetFromCamera(NDC(x, y, width, height), cam)
	hits := p.raycaster.IntersectObjects([]*scene.Node{p.Target})
	if len(hits) == 0 {
		return false
	}

	tex := p.Cycle.Advance()
	if m := p.Target.FaceMaterial(scene.FaceFront); m != nil {
		m.SetMap(tex)
	}
	slog.Debug("monitor image changed", "index", p.Cycle.Index(), "texture", tex.Name)
	return true
}
