package game

import (
	"math"

	"github.com/Garsondee/Gorillas-3D/internal/geom"
)

// Camera is a viewpoint described by position and look-at target.
type Camera struct {
	Position geom.Vec3
	LookAt   geom.Vec3
}

// RevealParams feeds the orbit flown while the city rises.
type RevealParams struct {
	Player0, Player1 geom.Vec3 // player camera positions
	SizeX, SizeY     int
	MinHeight        float64
}

// RevealCamera orbits the origin once over the reveal, starting at the
// bearing of player 0. The orbit tightens from max(SizeX,SizeY)/2+5 down to
// 1 while the camera climbs from MinHeight to SizeY+5.
func RevealCamera(r RevealParams, u float64) Camera {
	centre := r.Player0.Add(r.Player1).Scale(0.5)
	start := geom.AngleOnCircle(centre.X, centre.Z, r.Player0.X, r.Player0.Z)
	angle := geom.Rad(geom.Lerp(start, start+360, u))

	maxRadius := float64(max(r.SizeX, r.SizeY))*0.5 + 5
	radius := geom.Lerp(1, maxRadius, 1-u)
	sin, cos := math.Sincos(angle)

	return Camera{
		Position: geom.Vec3{
			X: radius * cos,
			Y: geom.Lerp(r.MinHeight, float64(r.SizeY)+5, u),
			Z: radius * sin,
		},
		LookAt: geom.Zero,
	}
}

// SelectionPath is one camera flight between the players.
type SelectionPath struct {
	Start, Stop Camera
	ActiveIndex int // player becoming active
	SizeY       int
	Rise        bool // lift over the skyline mid-flight
}

// SelectionCamera flies half an ellipse around the midpoint of Start and
// Stop so the line of fire is not given away. Height and look-at are sine
// eased; with Rise set the camera also arcs above the tallest building.
func SelectionCamera(s SelectionPath, u float64) Camera {
	startPos, stopPos := s.Start.Position, s.Stop.Position

	y := geom.Sine(startPos.Y, stopPos.Y, u)
	if s.Rise {
		lift := 5 + float64(s.SizeY) - math.Max(startPos.Y, stopPos.Y)
		y += math.Sin(u*math.Pi) * lift
	}

	centre := startPos.Add(stopPos).Scale(0.5)
	halfDistance := geom.Distance2D(startPos.X, startPos.Z, stopPos.X, stopPos.Z) * 0.5
	bearing := geom.AngleOnCircle(centre.X, centre.Z, startPos.X, startPos.Z)

	from, to, flip := 0.0, 180.0, bearing
	if s.ActiveIndex != 0 {
		from, to, flip = 180, 360, bearing+180
	}
	sin, cos := math.Sincos(geom.Rad(geom.Sine(from, to, u)))
	ex := centre.X + halfDistance*cos
	ez := centre.Z + 0.3*halfDistance*sin
	x, z := geom.RotateOnCircle(centre.X, centre.Z, ex, ez, flip)

	return Camera{
		Position: geom.Vec3{X: x, Y: y, Z: z},
		LookAt:   geom.SineVec(s.Start.LookAt, s.Stop.LookAt, u),
	}
}

// ChaseCamera trails the projectile along its reversed direction of travel.
// Close to impact the camera backs off so it does not fly into the
// explosion. ok is false when the projectile has not moved.
func ChaseCamera(prev, cur geom.Vec3, timeToHit float64, c CameraTuning) (geom.Vec3, bool) {
	back := prev.Sub(cur).Normalize()
	if back.Len() == 0 {
		return geom.Vec3{}, false
	}
	distance := c.ChaseDistance
	if timeToHit <= c.ChaseRampTime && c.ChaseRampTime > 0 {
		distance += 1 - timeToHit/c.ChaseRampTime
	}
	return cur.Add(back.Scale(distance)), true
}
