package trie

import (
	"fmt"
	"reflect"
	"sort"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/commands"
	"github.com/leanovate/gopter/gen"
)

// keySpace holds every string over "abc" of length at most 4, so random
// commands hit shared prefixes often.
var keySpace = func() []string {
	keys := []string{""}
	frontier := []string{""}
	for depth := 0; depth < 4; depth++ {
		var next []string
		for _, k := range frontier {
			for _, c := range "abc" {
				next = append(next, k+string(c))
			}
		}
		keys = append(keys, next...)
		frontier = next
	}
	return keys
}()

type expected struct {
	entries map[string]int
}

// with returns a copy of e changed by fn, leaving e as gopter recorded it.
func (e *expected) with(fn func(map[string]int)) *expected {
	entries := make(map[string]int, len(e.entries)+1)
	for k, v := range e.entries {
		entries[k] = v
	}
	fn(entries)
	return &expected{entries: entries}
}

type system struct {
	simple *Trie[string, int, byte, *Node[byte, *Entry[string, int]]]
	da     *Trie[string, int, byte, int]
}

func (s *system) check() error {
	return doubleArrayInvariants(daBackend(s.da))
}

type pair struct {
	simple interface{}
	da     interface{}
	err    error
}

func postCondition(name string, want interface{}, result commands.Result) *gopter.PropResult {
	r := result.(pair)
	if r.err != nil {
		fmt.Printf("%s: %v\n", name, r.err)
		return &gopter.PropResult{Status: gopter.PropFalse}
	}
	if !reflect.DeepEqual(r.simple, r.da) {
		fmt.Printf("%s: simple=%v double-array=%v\n", name, r.simple, r.da)
		return &gopter.PropResult{Status: gopter.PropFalse}
	}
	if want != nil && !reflect.DeepEqual(want, r.da) {
		fmt.Printf("%s: expected=%v actual=%v\n", name, want, r.da)
		return &gopter.PropResult{Status: gopter.PropFalse}
	}
	return &gopter.PropResult{Status: gopter.PropTrue}
}

type insertCommand int

func (k insertCommand) Run(s commands.SystemUnderTest) commands.Result {
	sys := s.(*system)
	key := keySpace[k]
	_, a := sys.simple.Insert(key, int(k))
	_, b := sys.da.Insert(key, int(k))
	return pair{simple: a, da: b, err: sys.check()}
}

func (k insertCommand) NextState(state commands.State) commands.State {
	return state.(*expected).with(func(entries map[string]int) {
		if _, ok := entries[keySpace[k]]; !ok {
			entries[keySpace[k]] = int(k)
		}
	})
}

func (k insertCommand) PreCondition(state commands.State) bool { return true }

func (k insertCommand) PostCondition(state commands.State, result commands.Result) *gopter.PropResult {
	return postCondition(k.String(), nil, result)
}

func (k insertCommand) String() string { return fmt.Sprintf("Insert(%q)", keySpace[k]) }

type deleteCommand int

func (k deleteCommand) Run(s commands.SystemUnderTest) commands.Result {
	sys := s.(*system)
	key := keySpace[k]
	a := sys.simple.Delete(key)
	b := sys.da.Delete(key)
	return pair{simple: a, da: b, err: sys.check()}
}

func (k deleteCommand) NextState(state commands.State) commands.State {
	return state.(*expected).with(func(entries map[string]int) {
		delete(entries, keySpace[k])
	})
}

func (k deleteCommand) PreCondition(state commands.State) bool { return true }

func (k deleteCommand) PostCondition(state commands.State, result commands.Result) *gopter.PropResult {
	return postCondition(k.String(), nil, result)
}

func (k deleteCommand) String() string { return fmt.Sprintf("Delete(%q)", keySpace[k]) }

type getCommand int

func (k getCommand) Run(s commands.SystemUnderTest) commands.Result {
	sys := s.(*system)
	key := keySpace[k]
	a, aok := sys.simple.Get(key)
	b, bok := sys.da.Get(key)
	return pair{simple: [2]interface{}{a, aok}, da: [2]interface{}{b, bok}}
}

func (k getCommand) NextState(state commands.State) commands.State { return state }

func (k getCommand) PreCondition(state commands.State) bool { return true }

func (k getCommand) PostCondition(state commands.State, result commands.Result) *gopter.PropResult {
	v, ok := state.(*expected).entries[keySpace[k]]
	return postCondition(k.String(), [2]interface{}{v, ok}, result)
}

func (k getCommand) String() string { return fmt.Sprintf("Get(%q)", keySpace[k]) }

var SizeCommand = &commands.ProtoCommand{
	Name: "Size",
	RunFunc: func(s commands.SystemUnderTest) commands.Result {
		sys := s.(*system)
		return pair{simple: sys.simple.Len(), da: sys.da.Len()}
	},
	NextStateFunc:    func(state commands.State) commands.State { return state },
	PreConditionFunc: func(state commands.State) bool { return true },
	PostConditionFunc: func(state commands.State, result commands.Result) *gopter.PropResult {
		return postCondition("Size", len(state.(*expected).entries), result)
	},
}

var IterateCommand = &commands.ProtoCommand{
	Name: "Iterate",
	RunFunc: func(s commands.SystemUnderTest) commands.Result {
		sys := s.(*system)
		return pair{simple: collectEntries(sys.simple.Iterator()), da: collectEntries(sys.da.Iterator())}
	},
	NextStateFunc:    func(state commands.State) commands.State { return state },
	PreConditionFunc: func(state commands.State) bool { return true },
	PostConditionFunc: func(state commands.State, result commands.Result) *gopter.PropResult {
		entries := state.(*expected).entries
		keys := make([]string, 0, len(entries))
		for k := range entries {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		want := make([]Entry[string, int], 0, len(keys))
		for _, k := range keys {
			want = append(want, Entry[string, int]{k, entries[k]})
		}
		return postCondition("Iterate", want, result)
	},
}

func collectEntries[S comparable](it *Iterator[string, int, byte, S]) []Entry[string, int] {
	out := []Entry[string, int]{}
	for {
		k, v, ok := it.Next()
		if !ok {
			return out
		}
		out = append(out, Entry[string, int]{k, v})
	}
}

func keyCommandGen(toCommand func(int) commands.Command) gopter.Gen {
	return gen.IntRange(0, len(keySpace)-1).Map(func(i int) commands.Command {
		return toCommand(i)
	})
}

var (
	genInsert = keyCommandGen(func(i int) commands.Command { return insertCommand(i) })
	genDelete = keyCommandGen(func(i int) commands.Command { return deleteCommand(i) })
	genGet    = keyCommandGen(func(i int) commands.Command { return getCommand(i) })

	trieCommands = &commands.ProtoCommands{
		NewSystemUnderTestFunc: func(initialState commands.State) commands.SystemUnderTest {
			sys := &system{
				simple: NewSimple[string, int, byte](StringKeys{}),
				da:     NewDoubleArray[string, int, byte](StringKeys{}, WithCapacity(2)),
			}
			return sys
		},
		InitialStateGen: gen.Const(&expected{entries: map[string]int{}}),
		GenCommandFunc: func(state commands.State) gopter.Gen {
			return gen.Weighted(
				[]gen.WeightedGen{
					{Weight: 100, Gen: genInsert},
					{Weight: 60, Gen: genDelete},
					{Weight: 40, Gen: genGet},
					{Weight: 10, Gen: gen.Const(SizeCommand)},
					{Weight: 10, Gen: gen.Const(IterateCommand)},
				},
			)
		},
	}
)

func TestBackendEquivalence(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	if !testing.Short() {
		parameters.MaxSize = 512
	}
	properties := gopter.NewProperties(parameters)
	properties.Property("simple and double-array backends agree", commands.Prop(trieCommands))
	properties.TestingRun(t)
}
