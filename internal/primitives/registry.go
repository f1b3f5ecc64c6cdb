// Package primitives draws the editor's meshes: lit block cubes (tinted or
// textured), selection and preview wireframes, and the grow handle spheres.
// GPU resources are created lazily on first draw so they are allocated after
// the window/OpenGL context exists.
package primitives

import (
	"os"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"

	"block-editor/internal/material"
)

// cached holds mesh and material for one mesh kind. texturedMtl is used when
// drawing with an albedo texture (same mesh, different material).
type cached struct {
	mesh        rl.Mesh
	mtl         rl.Material
	texturedMtl rl.Material
}

// Registry owns the block and handle meshes plus the material texture cache.
type Registry struct {
	cache    map[string]cached
	textures map[string]rl.Texture2D // by material name; zero ID = tried and failed
	viewPos  [3]float32              // camera position, set each frame for lighting
	lightDir [3]float32              // direction to light (normalized), set each frame
}

// NewRegistry returns a registry with no GPU resources yet.
func NewRegistry() *Registry {
	return &Registry{
		cache:    make(map[string]cached),
		textures: make(map[string]rl.Texture2D),
		lightDir: [3]float32{0.5, 1, 0.5}, // default: from above-right
	}
}

// SetView sets camera position and direction-to-light for this frame. Call once
// per frame before drawing blocks so the lit shader gets correct shading.
func (r *Registry) SetView(viewPos, lightDir [3]float32) {
	r.viewPos = viewPos
	r.lightDir = lightDir
}

// texturePrefixes are tried in order so textures are found whether run from
// repo root or cmd/editor.
var texturePrefixes = []string{"assets", "../../assets"}

// handle mesh resolution
const handleRings = 12
const handleSlices = 12

// ensureCube creates the unit cube mesh with the lit and lit-textured
// materials.
func (r *Registry) ensureCube() {
	if _, ok := r.cache["cube"]; ok {
		return
	}
	mesh := rl.GenMeshCube(1, 1, 1)
	mtl := rl.LoadMaterialDefault()
	if shader := rl.LoadShaderFromMemory(litVS, litFS); rl.IsShaderValid(shader) {
		mtl.Shader = shader
	}
	texturedMtl := rl.LoadMaterialDefault()
	if shader := rl.LoadShaderFromMemory(litVS, litTexturedFS); rl.IsShaderValid(shader) {
		texturedMtl.Shader = shader
	}
	r.cache["cube"] = cached{mesh: mesh, mtl: mtl, texturedMtl: texturedMtl}
}

// ensureHandle creates the grow handle sphere mesh. Radius 0.5 so a scale of
// 2*radius gives the wanted world radius, matching the cube convention.
func (r *Registry) ensureHandle() {
	if _, ok := r.cache["handle"]; ok {
		return
	}
	mesh := rl.GenMeshSphere(0.5, handleRings, handleSlices)
	mtl := rl.LoadMaterialDefault()
	if shader := rl.LoadShaderFromMemory(litVS, litFS); rl.IsShaderValid(shader) {
		mtl.Shader = shader
	}
	r.cache["handle"] = cached{mesh: mesh, mtl: mtl}
}

// TextureFor returns the texture of a material definition, loading and caching
// it on first use. ok is false when the material has no texture or the file is
// missing; callers fall back to the tinted untextured draw.
func (r *Registry) TextureFor(def material.Def) (rl.Texture2D, bool) {
	if def.Texture == "" {
		return rl.Texture2D{}, false
	}
	if tex, ok := r.textures[def.Name]; ok {
		return tex, rl.IsTextureValid(tex)
	}
	var tex rl.Texture2D
	for _, prefix := range texturePrefixes {
		p := filepath.Clean(filepath.Join(prefix, def.Texture))
		if _, err := os.Stat(p); err != nil {
			continue
		}
		tex = rl.LoadTexture(p)
		if rl.IsTextureValid(tex) {
			break
		}
	}
	r.textures[def.Name] = tex
	return tex, rl.IsTextureValid(tex)
}

// Unload releases all cached textures. Meshes and shaders are freed with the
// GL context at window close.
func (r *Registry) Unload() {
	for name, tex := range r.textures {
		if rl.IsTextureValid(tex) {
			rl.UnloadTexture(tex)
		}
		delete(r.textures, name)
	}
}

// DrawBlock draws a lit cube at position with the given scale and tint.
// Must be called between BeginMode3D and EndMode3D, after SetView.
func (r *Registry) DrawBlock(position, scale [3]float32, tint rl.Color) {
	r.ensureCube()
	c := r.cache["cube"]
	if albedo := c.mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = tint
	}
	r.setLitShaderUniforms(c.mtl.Shader)
	rl.DrawMesh(c.mesh, c.mtl, blockTransform(position, scale))
}

// DrawBlockTextured draws a lit cube with the given albedo texture, tinted.
func (r *Registry) DrawBlockTextured(position, scale [3]float32, tint rl.Color, tex rl.Texture2D) {
	if !rl.IsTextureValid(tex) {
		r.DrawBlock(position, scale, tint)
		return
	}
	r.ensureCube()
	c := r.cache["cube"]
	rl.SetMaterialTexture(&c.texturedMtl, rl.MapAlbedo, tex)
	if albedo := c.texturedMtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = tint
	}
	r.setLitShaderUniforms(c.texturedMtl.Shader)
	rl.DrawMesh(c.mesh, c.texturedMtl, blockTransform(position, scale))
}

// DrawBlockWires draws a cube wireframe, used for the selection outline and
// the not-yet-committed resize previews.
func (r *Registry) DrawBlockWires(position, scale [3]float32, color rl.Color) {
	pos := rl.NewVector3(position[0], position[1], position[2])
	size := rl.NewVector3(scale[0], scale[1], scale[2])
	rl.DrawCubeWiresV(pos, size, color)
}

// DrawHandle draws one grow handle sphere.
func (r *Registry) DrawHandle(position [3]float32, radius float32, color rl.Color) {
	r.ensureHandle()
	c := r.cache["handle"]
	if albedo := c.mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = color
	}
	r.setLitShaderUniforms(c.mtl.Shader)
	d := 2 * radius
	rl.DrawMesh(c.mesh, c.mtl, blockTransform(position, [3]float32{d, d, d}))
}

func blockTransform(position, scale [3]float32) rl.Matrix {
	sx, sy, sz := scale[0], scale[1], scale[2]
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	if sz == 0 {
		sz = 1
	}
	scaleM := rl.MatrixScale(sx, sy, sz)
	transM := rl.MatrixTranslate(position[0], position[1], position[2])
	return rl.MatrixMultiply(scaleM, transM)
}

// Lit shaders: simple directional light + ambient, with an optional albedo
// texture variant. Same vertex attributes as raylib meshes.
const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 fragPosition;
out vec2 fragTexCoord;
out vec3 fragNormal;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragTexCoord = vertexTexCoord;
  fragNormal = mat3(matModel) * vertexNormal;
  gl_Position = matProjection * matView * worldPos;
}
`
	litFS = `#version 330
in vec3 fragPosition;
in vec2 fragTexCoord;
in vec3 fragNormal;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec3 lightDir;
uniform vec4 ambient;
uniform vec3 lightColor;
uniform float lightIntensity;
uniform float specularPower;
uniform float specularStrength;
out vec4 finalColor;
void main() {
  vec4 tint = colDiffuse;
  vec3 N = normalize(fragNormal);
  vec3 L = normalize(lightDir);
  vec3 V = normalize(viewPos - fragPosition);
  float NdotL = max(dot(N, L), 0.0);
  vec3 diffuse = tint.rgb * NdotL * lightColor * lightIntensity;
  vec3 amb = ambient.rgb * tint.rgb;
  vec3 H = normalize(L + V);
  float NdotH = max(dot(N, H), 0.0);
  float spec = pow(NdotH, specularPower) * specularStrength;
  vec3 specular = lightColor * spec * (NdotL > 0.0 ? 1.0 : 0.0);
  finalColor = vec4(amb + diffuse + specular, tint.a);
}
`
	// litTexturedFS: same as litFS but tint from albedo texture * colDiffuse.
	litTexturedFS = `#version 330
in vec3 fragPosition;
in vec2 fragTexCoord;
in vec3 fragNormal;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec3 lightDir;
uniform vec4 ambient;
uniform vec3 lightColor;
uniform float lightIntensity;
uniform float specularPower;
uniform float specularStrength;
uniform sampler2D albedoMap;
out vec4 finalColor;
void main() {
  vec4 texColor = texture(albedoMap, fragTexCoord);
  vec4 tint = texColor * colDiffuse;
  vec3 N = normalize(fragNormal);
  vec3 L = normalize(lightDir);
  vec3 V = normalize(viewPos - fragPosition);
  float NdotL = max(dot(N, L), 0.0);
  vec3 diffuse = tint.rgb * NdotL * lightColor * lightIntensity;
  vec3 amb = ambient.rgb * tint.rgb;
  vec3 H = normalize(L + V);
  float NdotH = max(dot(N, H), 0.0);
  float spec = pow(NdotH, specularPower) * specularStrength;
  vec3 specular = lightColor * spec * (NdotL > 0.0 ? 1.0 : 0.0);
  finalColor = vec4(amb + diffuse + specular, tint.a);
}
`
)

// defaultAmbient is the ambient term (dim so shadowed areas aren't pure black).
var defaultAmbient = [4]float32{0.2, 0.22, 0.26, 1.0}

// defaultLightColor is a soft warm-white for the directional light.
var defaultLightColor = [3]float32{1.0, 0.98, 0.95}

// defaultLightIntensity scales the directional diffuse (0-1).
const defaultLightIntensity = float32(0.75)

// defaultSpecularPower controls highlight tightness.
const defaultSpecularPower = float32(48.0)

// defaultSpecularStrength scales specular contribution (0-1).
const defaultSpecularStrength = float32(0.35)

// setLitShaderUniforms sets viewPos, lightDir, ambient, light color/intensity,
// and specular on the given shader (cgo-safe: local arrays).
func (r *Registry) setLitShaderUniforms(shader rl.Shader) {
	if !rl.IsShaderValid(shader) {
		return
	}
	viewPos := [3]float32{r.viewPos[0], r.viewPos[1], r.viewPos[2]}
	lightDir := [3]float32{r.lightDir[0], r.lightDir[1], r.lightDir[2]}
	amb := [4]float32{defaultAmbient[0], defaultAmbient[1], defaultAmbient[2], defaultAmbient[3]}
	lightColor := [3]float32{defaultLightColor[0], defaultLightColor[1], defaultLightColor[2]}
	if loc := rl.GetShaderLocation(shader, "viewPos"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, viewPos[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightDir"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, lightDir[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "ambient"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, amb[:], rl.ShaderUniformVec4, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightColor"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, lightColor[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightIntensity"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{defaultLightIntensity}, rl.ShaderUniformFloat)
	}
	if loc := rl.GetShaderLocation(shader, "specularPower"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{defaultSpecularPower}, rl.ShaderUniformFloat)
	}
	if loc := rl.GetShaderLocation(shader, "specularStrength"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{defaultSpecularStrength}, rl.ShaderUniformFloat)
	}
}
