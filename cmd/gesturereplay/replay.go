package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/phanxgames/gesture"
	"github.com/sirupsen/logrus"
)

// replayNode declares a node of the layout. Positions are relative to the
// parent; nodes with a zero size get no hit shape.
type replayNode struct {
	Name    string   `json:"name"`
	Tag     string   `json:"tag"`
	Parent  string   `json:"parent,omitempty"`
	Classes []string `json:"classes,omitempty"`
	X       float64  `json:"x"`
	Y       float64  `json:"y"`
	Width   float64  `json:"width"`
	Height  float64  `json:"height"`
}

// replayBinding attaches a recognizer to a named node.
type replayBinding struct {
	Gesture  string `json:"gesture"` // "longtap" or "dbtap"
	Node     string `json:"node"`
	Delegate string `json:"delegate,omitempty"`
}

// replayFile is the layout half of a replay; the "steps" half is read by
// gesture.LoadTestScript from the same document.
type replayFile struct {
	Nodes    []replayNode    `json:"nodes"`
	Bindings []replayBinding `json:"bindings"`
}

// gestureRecord is one output line.
type gestureRecord struct {
	Gesture string  `json:"gesture"`
	Binding int     `json:"binding"`
	Node    string  `json:"node"`
	Target  string  `json:"target"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	TimeMS  int64   `json:"t_ms"`
}

type replayOptions struct {
	frame     time.Duration
	settle    time.Duration
	maxFrames int
}

const defaultMaxFrames = 100000

// runReplay builds the layout, attaches the bindings and runs the script to
// completion, returning the recognized gestures in order.
func runReplay(data []byte, cfg gesture.Config, logger *logrus.Logger, opts replayOptions) ([]gestureRecord, error) {
	if opts.frame <= 0 {
		return nil, errors.New("replay: frame duration must be positive")
	}
	if opts.maxFrames <= 0 {
		opts.maxFrames = defaultMaxFrames
	}

	var rf replayFile
	if err := json.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parse replay: %w", err)
	}
	runner, err := gesture.LoadTestScript(data)
	if err != nil {
		return nil, err
	}

	scene := gesture.NewScene(gesture.WithConfig(cfg), gesture.WithLogger(logger))
	nodes, err := buildLayout(scene.Root(), rf.Nodes)
	if err != nil {
		return nil, err
	}
	names := make(map[uint32]string, len(nodes)+1)
	names[scene.Root().ID] = scene.Root().Name
	for name, n := range nodes {
		names[n.ID] = name
	}

	bindingIndex := make(map[uuid.UUID]int, len(rf.Bindings))
	for i, b := range rf.Bindings {
		att, err := attachBinding(scene, nodes, b)
		if err != nil {
			return nil, fmt.Errorf("binding %d: %w", i, err)
		}
		bindingIndex[att.ID] = i
		logger.WithFields(logrus.Fields{
			"binding":  i,
			"gesture":  b.Gesture,
			"node":     b.Node,
			"delegate": b.Delegate,
		}).Debug("attached")
	}

	var records []gestureRecord
	scene.OnGesture(func(ge gesture.GestureEvent) {
		records = append(records, gestureRecord{
			Gesture: ge.Kind.String(),
			Binding: bindingIndex[ge.AttachmentID],
			Node:    ge.NodeName,
			Target:  names[ge.TargetID],
			X:       ge.X,
			Y:       ge.Y,
			TimeMS:  ge.Time.Milliseconds(),
		})
	})

	scene.SetTestRunner(runner)
	for frames := 0; !runner.Done(); frames++ {
		if frames >= opts.maxFrames {
			return records, fmt.Errorf("replay: script did not finish within %d frames", opts.maxFrames)
		}
		scene.UpdateWithDelta(opts.frame)
	}
	for elapsed := time.Duration(0); elapsed < opts.settle; elapsed += opts.frame {
		scene.UpdateWithDelta(opts.frame)
	}
	return records, nil
}

// buildLayout creates the declared nodes under root. Parents must be
// declared before their children.
func buildLayout(root *gesture.Node, decls []replayNode) (map[string]*gesture.Node, error) {
	nodes := make(map[string]*gesture.Node, len(decls))
	for i, d := range decls {
		if d.Name == "" {
			return nil, fmt.Errorf("node %d: missing name", i)
		}
		if _, dup := nodes[d.Name]; dup {
			return nil, fmt.Errorf("node %d: duplicate name %q", i, d.Name)
		}
		parent := root
		if d.Parent != "" {
			p, ok := nodes[d.Parent]
			if !ok {
				return nil, fmt.Errorf("node %q: unknown parent %q", d.Name, d.Parent)
			}
			parent = p
		}
		tag := d.Tag
		if tag == "" {
			tag = "div"
		}
		n := gesture.NewNode(tag, d.Name, d.Classes...)
		n.X, n.Y = d.X, d.Y
		if d.Width > 0 && d.Height > 0 {
			n.HitShape = gesture.HitRect{Width: d.Width, Height: d.Height}
		}
		parent.AddChild(n)
		nodes[d.Name] = n
	}
	return nodes, nil
}

func attachBinding(scene *gesture.Scene, nodes map[string]*gesture.Node, b replayBinding) (*gesture.Attachment, error) {
	n, ok := nodes[b.Node]
	if !ok {
		return nil, fmt.Errorf("unknown node %q", b.Node)
	}
	noop := func(*gesture.Event) {}
	switch b.Gesture {
	case "longtap":
		return scene.Events().LongTap(n, gesture.LongTapHandlers{LongPress: noop, ShortTap: noop}, b.Delegate)
	case "dbtap":
		return scene.Events().DoubleTap(n, noop, b.Delegate)
	default:
		return nil, fmt.Errorf("unknown gesture %q", b.Gesture)
	}
}
