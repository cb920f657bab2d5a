// swarm-stress-gen emits the synthetic component and system set used by
// cmd/swarm-stress. Run it when changing the stress shape:
//
//	go run ./cmd/swarm-stress-gen -components 12 -systems 8 -out cmd/swarm-stress/generated.go
package main

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"os"

	"golang.org/x/tools/imports"
)

func main() {
	components := flag.Int("components", 12, "Number of generated component columns.")
	systems := flag.Int("systems", 8, "Number of generated systems.")
	out := flag.String("out", "cmd/swarm-stress/generated.go", "Output file path.")
	flag.Parse()

	src := generate(*components, *systems)

	formatted, err := imports.Process(*out, src, nil)
	if err != nil {
		log.Fatalf("format generated source: %v", err)
	}

	if err := os.WriteFile(*out, formatted, 0o644); err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %s (%d components, %d systems)", *out, *components, *systems)
}

func generate(components, systems int) []byte {
	var b bytes.Buffer

	fmt.Fprintln(&b, "// Code generated by swarm-stress-gen; DO NOT EDIT.")
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "package main")
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, `import "github.com/gridpool/swarm/ecs"`)
	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "const (\n\tgeneratedComponents = %d\n\tgeneratedSystems = %d\n)\n\n", components, systems)

	fmt.Fprintln(&b, "// GenComp is the synthetic component used by every generated column.")
	fmt.Fprintln(&b, "type GenComp struct {")
	fmt.Fprintln(&b, "\tA, B float64")
	fmt.Fprintln(&b, "}")
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "// RegisterGeneratedComponents registers the synthetic component columns.")
	fmt.Fprintln(&b, "func RegisterGeneratedComponents(r *ecs.Registry) ([]ecs.Handle[GenComp], error) {")
	fmt.Fprintf(&b, "\thandles := make([]ecs.Handle[GenComp], 0, generatedComponents)\n")
	fmt.Fprintln(&b, "\tnames := []string{")
	for i := 0; i < components; i++ {
		fmt.Fprintf(&b, "\t\t%q,\n", fmt.Sprintf("gen_%02d", i))
	}
	fmt.Fprintln(&b, "\t}")
	fmt.Fprintln(&b, "\tfor _, name := range names {")
	fmt.Fprintln(&b, "\t\th, err := ecs.RegisterComponent(r, name, GenComp{})")
	fmt.Fprintln(&b, "\t\tif err != nil {")
	fmt.Fprintln(&b, "\t\t\treturn nil, err")
	fmt.Fprintln(&b, "\t\t}")
	fmt.Fprintln(&b, "\t\thandles = append(handles, h)")
	fmt.Fprintln(&b, "\t}")
	fmt.Fprintln(&b, "\treturn handles, nil")
	fmt.Fprintln(&b, "}")
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "// RegisterGeneratedSystems registers synthetic systems: system i writes")
	fmt.Fprintln(&b, "// column i%N and reads the two columns after it.")
	fmt.Fprintln(&b, "func RegisterGeneratedSystems(s *ecs.Scheduler, comps []ecs.Handle[GenComp]) error {")
	fmt.Fprintln(&b, "\tnames := []string{")
	for i := 0; i < systems; i++ {
		fmt.Fprintf(&b, "\t\t%q,\n", fmt.Sprintf("stress_%02d", i))
	}
	fmt.Fprintln(&b, "\t}")
	fmt.Fprintln(&b, "\tfor i, name := range names {")
	fmt.Fprintln(&b, "\t\twc := comps[i%generatedComponents]")
	fmt.Fprintln(&b, "\t\trc1 := comps[(i+1)%generatedComponents]")
	fmt.Fprintln(&b, "\t\trc2 := comps[(i+2)%generatedComponents]")
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "\t\taccess := ecs.Access{")
	fmt.Fprintln(&b, "\t\t\tReads:  []ecs.ComponentID{rc1.ID(), rc2.ID(), wc.ID()},")
	fmt.Fprintln(&b, "\t\t\tWrites: []ecs.ComponentID{wc.ID()},")
	fmt.Fprintln(&b, "\t\t}")
	fmt.Fprintln(&b, "\t\tfn := func(f *ecs.Frame, r ecs.Range) error {")
	fmt.Fprintln(&b, "\t\t\tw := f.World")
	fmt.Fprintln(&b, "\t\t\tout := wc.Data(w)")
	fmt.Fprintln(&b, "\t\t\tin1 := rc1.Data(w)")
	fmt.Fprintln(&b, "\t\t\tin2 := rc2.Data(w)")
	fmt.Fprintln(&b, "\t\t\tfor slot := r.Start; slot < r.End; slot++ {")
	fmt.Fprintln(&b, "\t\t\t\tif !w.Live(slot) {")
	fmt.Fprintln(&b, "\t\t\t\t\tcontinue")
	fmt.Fprintln(&b, "\t\t\t\t}")
	fmt.Fprintln(&b, "\t\t\t\tout[slot].A += in1[slot].B*0.5 + in2[slot].A*0.25")
	fmt.Fprintln(&b, "\t\t\t\tout[slot].B = out[slot].B*0.99 + in1[slot].A*0.01")
	fmt.Fprintln(&b, "\t\t\t}")
	fmt.Fprintln(&b, "\t\t\treturn nil")
	fmt.Fprintln(&b, "\t\t}")
	fmt.Fprintln(&b, "\t\tif err := s.Register(name, access, fn); err != nil {")
	fmt.Fprintln(&b, "\t\t\treturn err")
	fmt.Fprintln(&b, "\t\t}")
	fmt.Fprintln(&b, "\t}")
	fmt.Fprintln(&b, "\treturn nil")
	fmt.Fprintln(&b, "}")

	return b.Bytes()
}
