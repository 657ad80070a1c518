package render

import (
	"log"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Vertex shader for the fullscreen tiling pass. The quad covers clip space;
// all the work happens per-fragment.
const quadVertexSource = `
#version 330 core
layout (location = 0) in vec2 aPos;

void main() {
    gl_Position = vec4(aPos, 0.0, 1.0);
}
` + "\x00"

// Fragment shader implementing the per-sample tiling classifier: projection
// model, Möbius recentering, iterated fold into the fundamental domain, then
// feature classification against the descriptor uniforms. Mirrors the CPU
// path in internal/classify; the two must be kept in sync.
const tilingFragmentSource = `
#version 330 core
out vec4 FragColor;

uniform vec2  uResolution;
uniform float uZoom;
uniform vec2  uShift;
uniform int   uModel;
uniform int   uFill;
uniform int   uMaxIter;
uniform bool  uShowEdges;
uniform bool  uShowVertices;
uniform bool  uShowOrnaments;

uniform vec2  uInvCen;
uniform float uInvRad;
uniform vec2  uRefNrm;
uniform vec2  uOrnament[12]; // four triangles, three corners each
uniform vec3  uEdgeCircle[3];   // xy = center, z = radius
uniform vec3  uVertexCircle[3]; // xy = center, z = radius
uniform vec3  uSnakes;
uniform int   uSectors;
uniform vec4  uPalette[6];

const float PI = 3.14159265358979;

vec2 cmul(vec2 a, vec2 b) {
    return vec2(a.x * b.x - a.y * b.y, a.x * b.y + a.y * b.x);
}

vec2 cdiv(vec2 a, vec2 b) {
    return vec2(dot(a, b), a.y * b.x - a.x * b.y) / dot(b, b);
}

vec2 ctanh(vec2 z) {
    vec2 e = exp(2.0 * z.x) * vec2(cos(2.0 * z.y), sin(2.0 * z.y));
    return cdiv(e - vec2(1.0, 0.0), e + vec2(1.0, 0.0));
}

// Projection model table; indices are part of the share format.
vec2 project(vec2 z) {
    if (uModel == 1) { // half-plane
        z.y += 1.0;
        return cdiv(z - vec2(0.0, 1.0), z + vec2(0.0, 1.0));
    }
    if (uModel == 2) { // Klein
        float s = 1.0 - dot(z, z);
        if (s <= 0.0) return z;
        return z / (1.0 + sqrt(s));
    }
    if (uModel == 3) { // inverted
        z *= 3.0;
        return vec2(z.x, -z.y) / dot(z, z);
    }
    if (uModel == 4) { // Gans
        z *= 10.0;
        return z / (1.0 + sqrt(1.0 + dot(z, z)));
    }
    if (uModel == 5) { // azimuthal equidistant
        z *= 3.0;
        float n = length(z);
        if (n < 1e-12) return vec2(0.0);
        return (z / n) * tanh(n / 2.0);
    }
    if (uModel == 6) { // equal-area
        z *= 3.0;
        return z / sqrt(1.0 + dot(z, z));
    }
    if (uModel == 7) { // band
        return ctanh(z);
    }
    return z; // Poincaré disk
}

bool insideTriangle(vec2 p, vec2 a, vec2 b, vec2 c) {
    float denom = (b.y - c.y) * (a.x - c.x) + (c.x - b.x) * (a.y - c.y);
    if (abs(denom) < 1e-12) return false;
    float w1 = ((b.y - c.y) * (p.x - c.x) + (c.x - b.x) * (p.y - c.y)) / denom;
    float w2 = ((c.y - a.y) * (p.x - c.x) + (a.x - c.x) * (p.y - c.y)) / denom;
    return w1 >= 0.0 && w2 >= 0.0 && (1.0 - w1 - w2) >= 0.0;
}

void main() {
    float halfMin = 0.5 * min(uResolution.x, uResolution.y);
    vec2 z = (gl_FragCoord.xy - 0.5 * uResolution) / (halfMin * uZoom);

    z = project(z);
    if (dot(z, z) >= 1.0) {
        FragColor = uPalette[0];
        return;
    }

    // Möbius recentering on the pan offset.
    z = cdiv(z - uShift, vec2(1.0, 0.0) - cmul(vec2(uShift.x, -uShift.y), z));

    // Fold into the fundamental domain: invert, reflect, conjugate.
    int parity = 0;
    float r2 = uInvRad * uInvRad;
    for (int i = 0; i < uMaxIter; i++) {
        bool changed = false;

        vec2 v = z - uInvCen;
        float n2 = dot(v, v);
        if (n2 < r2) {
            z = uInvCen + v * (r2 / n2);
            parity++;
            changed = true;
        }
        float d = dot(z, uRefNrm);
        if (d > 0.0) {
            z -= 2.0 * d * uRefNrm;
            parity++;
            changed = true;
        }
        if (z.y < 0.0) {
            z.y = -z.y;
            parity++;
            changed = true;
        }

        if (!changed) break;
    }

    if (uShowOrnaments) {
        for (int t = 0; t < 4; t++) {
            if (insideTriangle(z, uOrnament[3*t], uOrnament[3*t+1], uOrnament[3*t+2])) {
                FragColor = uPalette[5];
                return;
            }
        }
    }
    if (uShowVertices) {
        for (int i = 0; i < 3; i++) {
            if (distance(z, uVertexCircle[i].xy) < uVertexCircle[i].z) {
                FragColor = uPalette[4];
                return;
            }
        }
    }
    if (uShowEdges) {
        for (int i = 0; i < 3; i++) {
            if (distance(z, uEdgeCircle[i].xy) < uEdgeCircle[i].z) {
                FragColor = uPalette[3];
                return;
            }
        }
    }

    if (uFill == 1) { // solid
        FragColor = uPalette[1];
        return;
    }
    if (uFill == 2) { // snakes: pinwheel sectors around the auxiliary circle
        float ang = atan(z.y - uSnakes.y, z.x - uSnakes.x) + PI;
        int k = int(floor(ang / (2.0 * PI) * float(uSectors)));
        FragColor = ((k + parity) % 2 == 0) ? uPalette[1] : uPalette[2];
        return;
    }
    FragColor = (parity % 2 == 0) ? uPalette[1] : uPalette[2];
}
` + "\x00"

// Vertex shader for the overlay pass: transforms plane-space vertices by the
// view matrix and forwards the color.
const overlayVertexSource = `
#version 330 core
layout (location = 0) in vec2 aPos;
layout (location = 1) in vec4 aColor;

uniform mat4 uTransform;

out vec4 vColor;

void main() {
    gl_Position = uTransform * vec4(aPos, 0.0, 1.0);
    vColor = aColor;
}
` + "\x00"

const overlayFragmentSource = `
#version 330 core
in vec4 vColor;
out vec4 FragColor;

void main() {
    FragColor = vColor;
}
` + "\x00"

// tilingUniforms caches the uniform locations of the fullscreen pass.
type tilingUniforms struct {
	resolution    int32
	zoom          int32
	shift         int32
	model         int32
	fill          int32
	maxIter       int32
	showEdges     int32
	showVertices  int32
	showOrnaments int32
	invCen        int32
	invRad        int32
	refNrm        int32
	ornament      int32
	edgeCircle    int32
	vertexCircle  int32
	snakes        int32
	sectors       int32
	palette       int32
}

// ShaderManager owns the two GL programs: the fullscreen tiling pass and the
// vertex-colored overlay pass.
type ShaderManager struct {
	tiling     uint32
	overlay    uint32
	u          tilingUniforms
	uTransform int32 // overlay view matrix
}

// NewShaderManager compiles and links both programs. Compilation failures
// are programmer errors and abort.
func NewShaderManager() *ShaderManager {
	sm := &ShaderManager{}
	sm.tiling = linkProgram(quadVertexSource, tilingFragmentSource)
	sm.overlay = linkProgram(overlayVertexSource, overlayFragmentSource)

	loc := func(name string) int32 {
		return gl.GetUniformLocation(sm.tiling, gl.Str(name+"\x00"))
	}
	sm.u = tilingUniforms{
		resolution:    loc("uResolution"),
		zoom:          loc("uZoom"),
		shift:         loc("uShift"),
		model:         loc("uModel"),
		fill:          loc("uFill"),
		maxIter:       loc("uMaxIter"),
		showEdges:     loc("uShowEdges"),
		showVertices:  loc("uShowVertices"),
		showOrnaments: loc("uShowOrnaments"),
		invCen:        loc("uInvCen"),
		invRad:        loc("uInvRad"),
		refNrm:        loc("uRefNrm"),
		ornament:      loc("uOrnament"),
		edgeCircle:    loc("uEdgeCircle"),
		vertexCircle:  loc("uVertexCircle"),
		snakes:        loc("uSnakes"),
		sectors:       loc("uSectors"),
		palette:       loc("uPalette"),
	}
	sm.uTransform = gl.GetUniformLocation(sm.overlay, gl.Str("uTransform\x00"))
	return sm
}

// UseTiling binds the fullscreen tiling program.
func (sm *ShaderManager) UseTiling() { gl.UseProgram(sm.tiling) }

// UseOverlay binds the overlay program.
func (sm *ShaderManager) UseOverlay() { gl.UseProgram(sm.overlay) }

// SetTransform sets the overlay view matrix.
func (sm *ShaderManager) SetTransform(matrix [16]float32) {
	gl.UniformMatrix4fv(sm.uTransform, 1, false, &matrix[0])
}

// linkProgram compiles the pair of shaders and links them into a program.
func linkProgram(vertexSource, fragmentSource string) uint32 {
	vertexShader := compileShader(vertexSource, gl.VERTEX_SHADER)
	defer gl.DeleteShader(vertexShader)

	fragmentShader := compileShader(fragmentSource, gl.FRAGMENT_SHADER)
	defer gl.DeleteShader(fragmentShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(logText))
		log.Fatalf("Shader linking failed: %s", logText)
	}
	return program
}

// compileShader compiles a single shader from source.
func compileShader(source string, shaderType uint32) uint32 {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logText))
		log.Fatalf("Shader compilation failed: %s", logText)
	}
	return shader
}
