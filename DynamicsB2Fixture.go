package b2contact

/// This holds contact filtering data.
type B2Filter struct {
	/// The collision category bits. Normally you would just set one bit.
	CategoryBits uint16

	/// The collision mask bits. This states the categories that this
	/// shape would accept for collision.
	MaskBits uint16

	/// Collision groups allow a certain group of objects to never collide (negative)
	/// or always collide (positive). Zero means no collision group. Non-zero group
	/// filtering always wins against the mask bits.
	GroupIndex int16
}

func MakeB2Filter() B2Filter {
	return B2Filter{
		CategoryBits: 0x0001,
		MaskBits:     0xFFFF,
		GroupIndex:   0,
	}
}

/// A fixture definition is used to create a fixture. You can reuse fixture
/// definitions safely.
type B2FixtureDef struct {

	/// The shape, this must be set. The shape will be cloned.
	Shape B2ShapeInterface

	/// Use this to store application specific fixture data.
	UserData interface{}

	/// The friction coefficient, usually in the range [0,1].
	Friction float64

	/// The restitution (elasticity) usually in the range [0,1].
	Restitution float64

	/// The density, usually in kg/m^2.
	Density float64

	/// A sensor shape collects contact information but never generates a collision
	/// response. Contacts involving a sensor are never handed to the solver.
	IsSensor bool

	/// Contact filtering data.
	Filter B2Filter
}

/// The constructor sets the default fixture definition values.
func MakeB2FixtureDef() B2FixtureDef {
	return B2FixtureDef{
		Shape:       nil,
		UserData:    nil,
		Friction:    0.2,
		Restitution: 0.0,
		Density:     0.0,
		IsSensor:    false,
		Filter:      MakeB2Filter(),
	}
}

/// A fixture attaches a shape to a body. It inherits its transform from the
/// body and holds the non-geometric data such as friction and filtering.
type B2Fixture struct {
	M_body  B2BodyHandle
	M_shape B2ShapeInterface

	M_density     float64
	M_friction    float64
	M_restitution float64
	M_isSensor    bool
	M_filter      B2Filter

	M_userData interface{}
}

func NewB2Fixture(body B2BodyHandle, def *B2FixtureDef) *B2Fixture {
	B2Assert(def.Shape != nil)
	B2Assert(def.Density >= 0.0)

	return &B2Fixture{
		M_body:        body,
		M_shape:       def.Shape.Clone(),
		M_density:     def.Density,
		M_friction:    def.Friction,
		M_restitution: def.Restitution,
		M_isSensor:    def.IsSensor,
		M_filter:      def.Filter,
		M_userData:    def.UserData,
	}
}

func (fixture B2Fixture) GetType() uint8 {
	return fixture.M_shape.GetType()
}

func (fixture B2Fixture) GetShape() B2ShapeInterface {
	return fixture.M_shape
}

func (fixture B2Fixture) GetBody() B2BodyHandle {
	return fixture.M_body
}

func (fixture B2Fixture) IsSensor() bool {
	return fixture.M_isSensor
}

func (fixture B2Fixture) GetFilterData() B2Filter {
	return fixture.M_filter
}

func (fixture B2Fixture) GetDensity() float64 {
	return fixture.M_density
}

func (fixture B2Fixture) GetFriction() float64 {
	return fixture.M_friction
}

func (fixture *B2Fixture) SetFriction(friction float64) {
	fixture.M_friction = friction
}

func (fixture B2Fixture) GetRestitution() float64 {
	return fixture.M_restitution
}

func (fixture *B2Fixture) SetRestitution(restitution float64) {
	fixture.M_restitution = restitution
}

func (fixture B2Fixture) GetUserData() interface{} {
	return fixture.M_userData
}

func (fixture B2Fixture) GetMassData(massData *B2MassData) {
	fixture.M_shape.ComputeMass(massData, fixture.M_density)
}

func (fixture B2Fixture) GetAABB(xf B2Transform) B2AABB {
	var aabb B2AABB
	fixture.M_shape.ComputeAABB(&aabb, xf)
	return aabb
}
