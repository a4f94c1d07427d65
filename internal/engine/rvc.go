package engine

import (
	"context"
	"strconv"

	"gmod-tts/internal/voice"
)

// RVCParams tune a voice conversion run.
type RVCParams struct {
	Method     string  `json:"method" yaml:"method"`
	Protect    float64 `json:"protect" yaml:"protect"`
	Pitch      int     `json:"pitch" yaml:"pitch"`
	RMSMixRate float64 `json:"rms_mix_rate" yaml:"rms_mix_rate"`
}

// DefaultRVCParams are used for any field a model definition leaves out.
func DefaultRVCParams() RVCParams {
	return RVCParams{
		Method:     "rmvpe",
		Protect:    0.5,
		Pitch:      0,
		RMSMixRate: 0.25,
	}
}

// RVCModel identifies one trained conversion model.
type RVCModel struct {
	Model   string
	Index   string
	Version string
	Params  RVCParams
}

// RVC converts speech to a target voice with an RVC inference command.
type RVC struct {
	command string
	device  string
	model   RVCModel
}

// NewRVC returns a transformer that runs command (a full command line such
// as "python -m rvc_python cli") on device with the given model.
func NewRVC(command, device string, model RVCModel) (*RVC, error) {
	if _, _, err := splitCommand(command); err != nil {
		return nil, err
	}
	return &RVC{command: command, device: device, model: model}, nil
}

func (r *RVC) Name() string { return "rvc" }

func (r *RVC) Transform(ctx context.Context, input, output string) error {
	name, args, err := splitCommand(r.command)
	if err != nil {
		return err
	}
	return runCommand(ctx, nil, name, append(args, r.args(input, output)...)...)
}

func (r *RVC) args(input, output string) []string {
	p := r.model.Params
	args := []string{
		"-i", input,
		"-o", output,
		"-mp", r.model.Model,
		"-v", r.model.Version,
		"-me", p.Method,
		"-pi", strconv.Itoa(p.Pitch),
		"-pr", strconv.FormatFloat(p.Protect, 'f', -1, 64),
		"-rmr", strconv.FormatFloat(p.RMSMixRate, 'f', -1, 64),
	}
	if r.model.Index != "" {
		args = append(args, "-ip", r.model.Index)
	}
	if r.device != "" {
		args = append(args, "-de", r.device)
	}
	return args
}

var _ voice.Transformer = (*RVC)(nil)
