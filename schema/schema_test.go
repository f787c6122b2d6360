package schema

import (
	"reflect"
	"testing"
)

type person struct {
	Name string `kdl:"arg"`
	Age  int    `kdl:"arg,optional"`
	City string `kdl:"city,optional"`
}

func TestBuildArgumentAndPropertySlots(t *testing.T) {
	d, err := Build(reflect.TypeOf(person{}))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(d.Arguments) != 2 {
		t.Fatalf("Arguments = %d, want 2", len(d.Arguments))
	}
	if d.Arguments[0].Name != "Name" || d.Arguments[0].Optional {
		t.Errorf("Arguments[0] = %+v, want required Name", d.Arguments[0])
	}
	if d.Arguments[1].Name != "Age" || !d.Arguments[1].Optional {
		t.Errorf("Arguments[1] = %+v, want optional Age", d.Arguments[1])
	}
	props := d.PropertySlots()
	if len(props) != 1 || props[0].Name != "city" {
		t.Fatalf("PropertySlots = %+v, want one slot named city", props)
	}
	if d.NodeName != "person" {
		t.Errorf("NodeName = %q, want %q", d.NodeName, "person")
	}
}

func TestBuildIsCached(t *testing.T) {
	t1, err := Build(reflect.TypeOf(person{}))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	t2, err := Build(reflect.TypeOf(person{}))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if t1 != t2 {
		t.Error("Build did not return the cached Descriptor on a second call")
	}
}

func TestBuildRejectsNonStruct(t *testing.T) {
	if _, err := Build(reflect.TypeOf(0)); err == nil {
		t.Error("expected error building a Descriptor for a non-struct type")
	}
}

type withSkip struct {
	Name   string `kdl:"arg"`
	hidden string
	Ignore string `kdl:"-"`
}

func TestBuildSkipsUnexportedAndDashTagged(t *testing.T) {
	d, err := Build(reflect.TypeOf(withSkip{}))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(d.Arguments) != 1 {
		t.Fatalf("Arguments = %d, want 1", len(d.Arguments))
	}
	if len(d.Properties) != 0 {
		t.Errorf("Properties = %+v, want none", d.Properties)
	}
}

type union interface{ isUnion() }
type unionA struct {
	Tag string `kdl:"arg"`
}
type unionB struct {
	Tag string `kdl:"arg"`
}

func (unionA) isUnion() {}
func (unionB) isUnion() {}

type withChildren struct {
	Items []union `kdl:"items"`
}

func TestBuildChildrenSlotRequiresRegisteredUnion(t *testing.T) {
	if _, err := Build(reflect.TypeOf(withChildren{})); err == nil {
		t.Error("expected error for an interface child slot with no registered members")
	}

	Register((*union)(nil), unionA{}, unionB{})
	d, err := Build(reflect.TypeOf(struct {
		Items []union `kdl:"items"`
	}{}))
	if err != nil {
		t.Fatalf("Build after Register: %v", err)
	}
	if len(d.Children) != 1 || len(d.Children[0].Group) != 2 {
		t.Fatalf("Children = %+v, want one slot with 2 group members", d.Children)
	}
}
