package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type ArrowTag struct{}

var ArrowTagComponent = NewComponent[ArrowTag]()

// ReflectorTag marks surfaces arrows bounce off instead of sticking to.
type ReflectorTag struct{}

var ReflectorTagComponent = NewComponent[ReflectorTag]()
