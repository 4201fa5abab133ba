package party

type fakePresenter struct {
	tags     map[string]bool
	triggers []string
	bools    map[string]bool
}

func newFakePresenter() *fakePresenter {
	return &fakePresenter{tags: map[string]bool{}, bools: map[string]bool{}}
}

func (p *fakePresenter) InState(tag string) bool { return p.tags[tag] }

func (p *fakePresenter) Trigger(name string) { p.triggers = append(p.triggers, name) }

func (p *fakePresenter) SetBool(name string, value bool) { p.bools[name] = value }

type fakeBody struct {
	kinematic bool
	zeroH     int
	zeroAll   int
	teleports []Pose
	vx, vy    float64
	pose      Pose
}

func (b *fakeBody) ZeroHorizontalVelocity() {
	b.zeroH++
	b.vx = 0
}

func (b *fakeBody) ZeroVelocity() {
	b.zeroAll++
	b.vx, b.vy = 0, 0
}

func (b *fakeBody) Kinematic() bool { return b.kinematic }

func (b *fakeBody) Teleport(p Pose) {
	b.teleports = append(b.teleports, p)
	b.pose = p
}

type fakeDisplay struct {
	calls   int
	max     float64
	current float64
}

func (d *fakeDisplay) UpdateDisplay(maxHealth, currentHealth float64) {
	d.calls++
	d.max = maxHealth
	d.current = currentHealth
}

type recordingSink struct {
	calls []deathCall
}

type deathCall struct {
	who        CharacterID
	hadControl bool
}

func (s *recordingSink) OnCharacterDied(who CharacterID, hadControl bool) {
	s.calls = append(s.calls, deathCall{who: who, hadControl: hadControl})
}
