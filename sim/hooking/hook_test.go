package hooking_test

import (
	"bytes"
	"log"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/tlbsim/sim/hooking"
)

type positionRecorder struct {
	positions []string
}

func (r *positionRecorder) Func(ctx hooking.HookCtx) {
	r.positions = append(r.positions, ctx.Pos.Name)
}

type sliceHook struct {
	seen []string
}

func (h sliceHook) Func(hooking.HookCtx) {}

type namedDomain struct {
	hooking.HookableBase
}

func (d *namedDomain) Name() string {
	return "Domain"
}

var _ = Describe("HookableBase", func() {
	var (
		domain *namedDomain
		pos    *hooking.HookPos
	)

	BeforeEach(func() {
		domain = &namedDomain{}
		pos = &hooking.HookPos{Name: "Pos"}
	})

	It("should invoke hooks in the order they were attached", func() {
		order := []string{}
		domain.AcceptHook(hooking.HookFunc(func(hooking.HookCtx) {
			order = append(order, "first")
		}))
		domain.AcceptHook(hooking.HookFunc(func(hooking.HookCtx) {
			order = append(order, "second")
		}))

		domain.InvokeHook(hooking.HookCtx{Domain: domain, Pos: pos})

		Expect(order).To(Equal([]string{"first", "second"}))
		Expect(domain.NumHooks()).To(Equal(2))
		Expect(domain.Hooks()).To(HaveLen(2))
	})

	It("should pass the position", func() {
		r := &positionRecorder{}
		domain.AcceptHook(r)

		domain.InvokeHook(hooking.HookCtx{Domain: domain, Pos: pos})

		Expect(r.positions).To(Equal([]string{"Pos"}))
		Expect(pos.String()).To(Equal("Pos"))
	})

	It("should panic on duplicated hooks", func() {
		r := &positionRecorder{}
		domain.AcceptHook(r)

		Expect(func() { domain.AcceptHook(r) }).To(
			PanicWith(ContainSubstring("already attached")))
	})

	It("should accept hooks of types that cannot be compared", func() {
		Expect(func() {
			domain.AcceptHook(sliceHook{seen: []string{"a"}})
			domain.AcceptHook(sliceHook{seen: []string{"b"}})
		}).NotTo(Panic())

		Expect(domain.NumHooks()).To(Equal(2))
	})

	It("should tell a pointer hook from a value hook", func() {
		domain.AcceptHook(&positionRecorder{})
		domain.AcceptHook(sliceHook{})

		Expect(domain.NumHooks()).To(Equal(2))
	})

	It("should tell the domain name", func() {
		Expect(hooking.DomainName(hooking.HookCtx{Domain: domain})).
			To(Equal("Domain"))
		Expect(hooking.DomainName(hooking.HookCtx{})).To(Equal("unknown"))
	})

	It("should log hook invocations", func() {
		buf := bytes.NewBuffer(nil)
		domain.AcceptHook(hooking.NewLogHook(log.New(buf, "", 0)))

		domain.InvokeHook(hooking.HookCtx{Domain: domain, Pos: pos, Item: 42})
		domain.InvokeHook(hooking.HookCtx{
			Domain: domain, Pos: pos, Item: 1, Detail: "d",
		})

		Expect(buf.String()).To(Equal("[Domain] Pos 42\n[Domain] Pos 1 d\n"))
	})
})
