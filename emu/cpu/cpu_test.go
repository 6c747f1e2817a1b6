package cpu

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rcornwell/mipssim/emu/assemble"
	"github.com/rcornwell/mipssim/emu/memory"
	"github.com/rcornwell/mipssim/emu/opcodemap"
)

func newTestCPU(stdin string) (*CPU, *bytes.Buffer) {
	mem := memory.New()
	out := &bytes.Buffer{}
	c := New(mem, out, strings.NewReader(stdin))
	return c, out
}

func asm(t *testing.T, k opcodemap.Kind, args []int64, pc uint32) uint32 {
	t.Helper()
	w, err := assemble.Encode(k, args, pc)
	if err != nil {
		t.Fatalf("encode %v: %v", k, err)
	}
	return w
}

func load(t *testing.T, c *CPU, words []uint32) {
	t.Helper()
	addr := uint32(memory.TextStart)
	for _, w := range words {
		if err := c.Mem.StoreInstruction(addr, w); err != nil {
			t.Fatalf("store instruction: %v", err)
		}
		addr += 4
	}
}

func TestAddChain(t *testing.T) {
	c, _ := newTestCPU("")
	words := []uint32{
		asm(t, opcodemap.KindAddi, []int64{8, 0, 5}, memory.TextStart),
		asm(t, opcodemap.KindAddi, []int64{9, 0, 7}, memory.TextStart+4),
		asm(t, opcodemap.KindAdd, []int64{10, 8, 9}, memory.TextStart+8),
	}
	load(t, c, words)
	for i := 0; i < 3; i++ {
		if err := c.Step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	if c.Regs[10] != 12 {
		t.Errorf("regs[$t2] = %d, want 12", c.Regs[10])
	}
	if c.PC != memory.TextStart+12 {
		t.Errorf("pc = 0x%x, want 0x%x", c.PC, memory.TextStart+12)
	}
}

func TestSyscallExit(t *testing.T) {
	c, out := newTestCPU("")
	c.Regs[2] = 10
	words := []uint32{asm(t, opcodemap.KindSyscall, nil, memory.TextStart)}
	load(t, c, words)
	if err := c.Step(); err != nil {
		t.Fatalf("step: %v", err)
	}
	if c.Running {
		t.Error("expected Running to be cleared by syscall 10")
	}
	if out.String() != "Simulator exiting..." {
		t.Errorf("got %q", out.String())
	}
}

func TestBranchTaken(t *testing.T) {
	c, _ := newTestCPU("")
	// addi $t0,$0,1 ; addi $t1,$0,1 ; beq $t0,$t1,L ; addi $t2,$0,99 ; L: addi $t2,$0,7
	lAddr := uint32(memory.TextStart + 16)
	words := []uint32{
		asm(t, opcodemap.KindAddi, []int64{8, 0, 1}, memory.TextStart),
		asm(t, opcodemap.KindAddi, []int64{9, 0, 1}, memory.TextStart+4),
		asm(t, opcodemap.KindBeq, []int64{8, 9, int64(lAddr)}, memory.TextStart+8),
		asm(t, opcodemap.KindAddi, []int64{10, 0, 99}, memory.TextStart+12),
		asm(t, opcodemap.KindAddi, []int64{10, 0, 7}, lAddr),
	}
	load(t, c, words)
	for i := 0; i < 3; i++ {
		if err := c.Step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	if c.PC != lAddr {
		t.Fatalf("pc after branch = 0x%x, want 0x%x", c.PC, lAddr)
	}
	if err := c.Step(); err != nil {
		t.Fatalf("step at L: %v", err)
	}
	if c.Regs[10] != 7 {
		t.Errorf("regs[$t2] = %d, want 7", c.Regs[10])
	}
}

func TestBranchNotTakenInvariant(t *testing.T) {
	c, _ := newTestCPU("")
	c.Regs[8] = 1
	words := []uint32{
		asm(t, opcodemap.KindBeq, []int64{8, 9, int64(memory.TextStart + 40)}, memory.TextStart),
	}
	load(t, c, words)
	old := c.PC
	if err := c.Step(); err != nil {
		t.Fatalf("step: %v", err)
	}
	if c.PC != old+4 {
		t.Errorf("untaken branch pc = 0x%x, want 0x%x", c.PC, old+4)
	}
}

func TestSbrkMonotonic(t *testing.T) {
	c, _ := newTestCPU("")
	c.Regs[2] = 9
	c.Regs[4] = 16
	words := []uint32{asm(t, opcodemap.KindSyscall, nil, memory.TextStart)}
	load(t, c, words)
	if err := c.Step(); err != nil {
		t.Fatalf("step: %v", err)
	}
	if c.Regs[2] != memory.HeapStart {
		t.Errorf("v0 = 0x%x, want 0x%x", c.Regs[2], memory.HeapStart)
	}
	if c.Mem.HeapPointer() != memory.HeapStart+16 {
		t.Errorf("heap pointer = 0x%x, want 0x%x", c.Mem.HeapPointer(), memory.HeapStart+16)
	}
}

func TestStoreWordBigEndian(t *testing.T) {
	c, _ := newTestCPU("")
	c.Regs[8] = 0x12345678 // $t0
	c.Regs[28] = memory.DataStart // $gp
	words := []uint32{asm(t, opcodemap.KindSw, []int64{8, 28, 0}, memory.TextStart)}
	load(t, c, words)
	if err := c.Step(); err != nil {
		t.Fatalf("step: %v", err)
	}
	want := []byte{0x12, 0x34, 0x56, 0x78}
	for i, w := range want {
		b, err := c.Mem.ReadByte(memory.DataStart + uint32(i))
		if err != nil || b != w {
			t.Errorf("byte %d = 0x%02x, want 0x%02x", i, b, w)
		}
	}
}

func TestLoadByteSignExtends(t *testing.T) {
	c, _ := newTestCPU("")
	_ = c.Mem.WriteByte(memory.DataStart, 0xFF)
	c.Regs[28] = memory.DataStart
	words := []uint32{asm(t, opcodemap.KindLb, []int64{8, 28, 0}, memory.TextStart)}
	load(t, c, words)
	if err := c.Step(); err != nil {
		t.Fatalf("step: %v", err)
	}
	if int32(c.Regs[8]) != -1 {
		t.Errorf("regs[$t0] = %d, want -1", int32(c.Regs[8]))
	}
}

func TestMultHiLo(t *testing.T) {
	c, _ := newTestCPU("")
	c.Regs[8] = 6
	c.Regs[9] = 7
	words := []uint32{
		asm(t, opcodemap.KindMult, []int64{8, 9}, memory.TextStart),
		asm(t, opcodemap.KindMflo, []int64{10}, memory.TextStart+4),
	}
	load(t, c, words)
	for i := 0; i < 2; i++ {
		if err := c.Step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	if c.Regs[10] != 42 {
		t.Errorf("regs[$t2] = %d, want 42", c.Regs[10])
	}
}

// mthi/mtlo take the source register from the decoded Rd field, not Rs;
// this checks the encoder and the handler agree on that placement.
func TestMthiMtloRoundTrip(t *testing.T) {
	c, _ := newTestCPU("")
	c.Regs[8] = 0xCAFE
	words := []uint32{
		asm(t, opcodemap.KindMthi, []int64{8}, memory.TextStart),
		asm(t, opcodemap.KindMfhi, []int64{9}, memory.TextStart+4),
	}
	load(t, c, words)
	for i := 0; i < 2; i++ {
		if err := c.Step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	if c.Regs[9] != 0xCAFE {
		t.Errorf("regs[$t1] = 0x%x, want 0xcafe", c.Regs[9])
	}
}

func TestRegisterZeroWriteObservable(t *testing.T) {
	c, _ := newTestCPU("")
	words := []uint32{asm(t, opcodemap.KindAddi, []int64{0, 0, 5}, memory.TextStart)}
	load(t, c, words)
	if err := c.Step(); err != nil {
		t.Fatalf("step: %v", err)
	}
	if c.Regs[0] != 5 {
		t.Errorf("regs[0] = %d, want 5 (writes to $zero are observable here)", c.Regs[0])
	}
}

func TestUnsupportedEncodingSurfacesDecodeError(t *testing.T) {
	c, _ := newTestCPU("")
	if err := c.Mem.StoreInstruction(memory.TextStart, 0x3F); err != nil {
		t.Fatalf("store instruction: %v", err)
	}
	err := c.Step()
	if err == nil {
		t.Fatal("expected decode error")
	}
	var cerr *Error
	if !errors.As(err, &cerr) || cerr.Kind != KindDecode {
		t.Errorf("got %v, want a KindDecode *Error", err)
	}
}
