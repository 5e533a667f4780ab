package game

// Tuning collects every gameplay constant. The zero value is not usable;
// start from DefaultTuning and override what you need.
type Tuning struct {
	Level     LevelTuning     `yaml:"level" mapstructure:"level"`
	Launch    LaunchTuning    `yaml:"launch" mapstructure:"launch"`
	Physics   PhysicsTuning   `yaml:"physics" mapstructure:"physics"`
	Wind      WindTuning      `yaml:"wind" mapstructure:"wind"`
	Timing    TimingTuning    `yaml:"timing" mapstructure:"timing"`
	Explosion ExplosionTuning `yaml:"explosion" mapstructure:"explosion"`
	Camera    CameraTuning    `yaml:"camera" mapstructure:"camera"`
}

// LevelTuning drives city generation.
type LevelTuning struct {
	RandomSize           bool    `yaml:"randomSize" mapstructure:"randomSize"`
	Size                 int     `yaml:"size" mapstructure:"size"`       // used when RandomSize is off
	MinSize              int     `yaml:"minSize" mapstructure:"minSize"` // inclusive
	MaxSize              int     `yaml:"maxSize" mapstructure:"maxSize"` // inclusive
	MinHeight            int     `yaml:"minHeight" mapstructure:"minHeight"`
	MaxHeight            int     `yaml:"maxHeight" mapstructure:"maxHeight"`
	Skins                int     `yaml:"skins" mapstructure:"skins"`
	EdgeBand             int     `yaml:"edgeBand" mapstructure:"edgeBand"`                   // players spawn within this many tiles of an edge
	MinPlayerDistance    float64 `yaml:"minPlayerDistance" mapstructure:"minPlayerDistance"` // fraction of the larger map side
	NearPlayerRadius     float64 `yaml:"nearPlayerRadius" mapstructure:"nearPlayerRadius"`
	AimJitter            int     `yaml:"aimJitter" mapstructure:"aimJitter"` // degrees
	MaxPlacementAttempts int     `yaml:"maxPlacementAttempts" mapstructure:"maxPlacementAttempts"`
}

// LaunchTuning bounds the throw parameters a player can choose.
type LaunchTuning struct {
	MinSpeed       int     `yaml:"minSpeed" mapstructure:"minSpeed"` // m/s
	MaxSpeed       int     `yaml:"maxSpeed" mapstructure:"maxSpeed"`
	MinElevation   int     `yaml:"minElevation" mapstructure:"minElevation"` // degrees, positive is up
	MaxElevation   int     `yaml:"maxElevation" mapstructure:"maxElevation"`
	CameraDistance float64 `yaml:"cameraDistance" mapstructure:"cameraDistance"` // launch point ahead of the gorilla
}

// PhysicsTuning configures the projectile integrator.
type PhysicsTuning struct {
	Gravity       float64 `yaml:"gravity" mapstructure:"gravity"`
	TileScale     float64 `yaml:"tileScale" mapstructure:"tileScale"` // scene units per metre
	Step          float64 `yaml:"step" mapstructure:"step"`           // seconds
	MaxFlightTime float64 `yaml:"maxFlightTime" mapstructure:"maxFlightTime"`
}

// WindTuning controls the per-level wind draw.
type WindTuning struct {
	Enabled  bool `yaml:"enabled" mapstructure:"enabled"`
	MinSpeed int  `yaml:"minSpeed" mapstructure:"minSpeed"`
	MaxSpeed int  `yaml:"maxSpeed" mapstructure:"maxSpeed"`
}

// TimingTuning holds animation durations in seconds.
type TimingTuning struct {
	Reveal        float64 `yaml:"reveal" mapstructure:"reveal"`
	Selection     float64 `yaml:"selection" mapstructure:"selection"`
	BlinkDuration float64 `yaml:"blinkDuration" mapstructure:"blinkDuration"`
	BlinkCount    int     `yaml:"blinkCount" mapstructure:"blinkCount"`
	Explosion     float64 `yaml:"explosion" mapstructure:"explosion"`
	Collapse      float64 `yaml:"collapse" mapstructure:"collapse"`
	ExtraDelay    float64 `yaml:"extraDelay" mapstructure:"extraDelay"`
	IntroTurns    int     `yaml:"introTurns" mapstructure:"introTurns"`
}

// ExplosionTuning shapes the particle burst.
type ExplosionTuning struct {
	Particles int     `yaml:"particles" mapstructure:"particles"`
	MinSpeed  float64 `yaml:"minSpeed" mapstructure:"minSpeed"`
	MaxSpeed  float64 `yaml:"maxSpeed" mapstructure:"maxSpeed"`
	MinScale  float64 `yaml:"minScale" mapstructure:"minScale"`
	MaxScale  float64 `yaml:"maxScale" mapstructure:"maxScale"`
}

// CameraTuning shapes the camera choreography.
type CameraTuning struct {
	ChaseDistance     float64 `yaml:"chaseDistance" mapstructure:"chaseDistance"`
	ChaseRampTime     float64 `yaml:"chaseRampTime" mapstructure:"chaseRampTime"`
	HideGorillaRadius float64 `yaml:"hideGorillaRadius" mapstructure:"hideGorillaRadius"`
	RiseEveryTurn     bool    `yaml:"riseEveryTurn" mapstructure:"riseEveryTurn"`
}

// DefaultTuning returns the stock game balance.
func DefaultTuning() Tuning {
	return Tuning{
		Level: LevelTuning{
			RandomSize:           false,
			Size:                 15,
			MinSize:              7,
			MaxSize:              15,
			MinHeight:            3,
			MaxHeight:            10,
			Skins:                6,
			EdgeBand:             4,
			MinPlayerDistance:    0.7,
			NearPlayerRadius:     3.0,
			AimJitter:            35,
			MaxPlacementAttempts: 1000,
		},
		Launch: LaunchTuning{
			MinSpeed:       10,
			MaxSpeed:       40,
			MinElevation:   -85,
			MaxElevation:   85,
			CameraDistance: 0.3,
		},
		Physics: PhysicsTuning{
			Gravity:       -9.8,
			TileScale:     0.2,
			Step:          0.01,
			MaxFlightTime: 60,
		},
		Wind: WindTuning{
			Enabled:  false,
			MinSpeed: 5,
			MaxSpeed: 30,
		},
		Timing: TimingTuning{
			Reveal:        5.0,
			Selection:     4.0,
			BlinkDuration: 0.2,
			BlinkCount:    9,
			Explosion:     0.5,
			Collapse:      0.2,
			ExtraDelay:    0.2,
			IntroTurns:    3,
		},
		Explosion: ExplosionTuning{
			Particles: 64,
			MinSpeed:  0.5,
			MaxSpeed:  2.5,
			MinScale:  0.5,
			MaxScale:  0.5,
		},
		Camera: CameraTuning{
			ChaseDistance:     0.3,
			ChaseRampTime:     0.5,
			HideGorillaRadius: 1.0,
			RiseEveryTurn:     true,
		},
	}
}
